package types

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/cockroachdb/errors"
)

// Replica is one unit of a service to place. Multiple replicas of the same
// service share the Service name; anti-affinity keys on it.
type Replica struct {
	Service string
	Demand  ResourceVector
}

// Server is one physical server in a plan. Usage only grows during packing,
// servers are never merged or destroyed within a run.
type Server struct {
	Name     string
	Usage    ResourceVector
	Services map[string]struct{}
	Replicas []*Replica
}

// NewServer opens an empty server.
func NewServer(name string) *Server {
	return &Server{
		Name:     name,
		Services: map[string]struct{}{},
	}
}

// Host assigns the replica, accumulating usage.
func (s *Server) Host(replica *Replica) {
	s.Usage.Add(replica.Demand)
	s.Services[replica.Service] = struct{}{}
	s.Replicas = append(s.Replicas, replica)
}

// HostedServices returns service names sorted lexicographically for display.
func (s *Server) HostedServices() []string {
	services := make([]string, 0, len(s.Services))
	for service := range s.Services {
		services = append(services, service)
	}
	sort.Strings(services)
	return services
}

type serverDocument struct {
	Name     string   `json:"name"`
	Services []string `json:"services"`
	CPU      float64  `json:"cpu"`
	Memory   float64  `json:"memory"`
	Network  float64  `json:"network"`
	DiskIO   float64  `json:"disk_io"`
	Storage  float64  `json:"storage"`
}

// MarshalJSON flattens usage into named fields, the shape report consumers
// expect.
func (s *Server) MarshalJSON() ([]byte, error) {
	return json.Marshal(serverDocument{
		Name:     s.Name,
		Services: s.HostedServices(),
		CPU:      s.Usage[CPU],
		Memory:   s.Usage[Memory],
		Network:  s.Usage[Network],
		DiskIO:   s.Usage[DiskIO],
		Storage:  s.Usage[Storage],
	})
}

// UnmarshalJSON rebuilds a server from its persisted document. Individual
// replicas are not persisted, only the grouping and usage.
func (s *Server) UnmarshalJSON(data []byte) error {
	doc := serverDocument{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return errors.WithStack(err)
	}
	s.Name = doc.Name
	s.Usage = ResourceVector{doc.CPU, doc.Memory, doc.Network, doc.DiskIO, doc.Storage}
	s.Services = map[string]struct{}{}
	for _, service := range doc.Services {
		s.Services[service] = struct{}{}
	}
	return nil
}

type vectorDocument struct {
	CPU     float64 `json:"cpu"`
	Memory  float64 `json:"memory"`
	Network float64 `json:"network"`
	DiskIO  float64 `json:"disk_io"`
	Storage float64 `json:"storage"`
}

// MarshalJSON .
func (v ResourceVector) MarshalJSON() ([]byte, error) {
	return json.Marshal(vectorDocument{v[CPU], v[Memory], v[Network], v[DiskIO], v[Storage]})
}

// UnmarshalJSON .
func (v *ResourceVector) UnmarshalJSON(data []byte) error {
	doc := vectorDocument{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return errors.WithStack(err)
	}
	*v = ResourceVector{doc.CPU, doc.Memory, doc.Network, doc.DiskIO, doc.Storage}
	return nil
}

// Plan is one complete assignment of all replicas to servers, produced by a
// single packer run. Plans are compared by the optimizer, never mutated.
type Plan struct {
	ID       string         `json:"id,omitempty"`
	Capacity ResourceVector `json:"capacity"`
	Servers  []*Server      `json:"servers"`
}

// NextServerName names servers S1, S2, ... in creation order.
func (p *Plan) NextServerName() string {
	return fmt.Sprintf("S%d", len(p.Servers)+1)
}

// SpareCapacity is the unused capacity summed over all servers and dimensions,
// the secondary comparator between plans with equal server count.
func (p *Plan) SpareCapacity() float64 {
	spare := p.Capacity.Total() * float64(len(p.Servers))
	for _, server := range p.Servers {
		spare -= server.Usage.Total()
	}
	return spare
}

// Replicas flattens the assigned replicas in server creation order.
func (p *Plan) Replicas() []*Replica {
	replicas := []*Replica{}
	for _, server := range p.Servers {
		replicas = append(replicas, server.Replicas...)
	}
	return replicas
}
