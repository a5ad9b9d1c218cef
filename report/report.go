package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/projecteru2/tetris/types"
)

// Render writes the per-server utilization table the way operators read it:
// one block per server with usage against capacity per dimension, then the
// server total.
func Render(w io.Writer, plan *types.Plan) {
	fmt.Fprintf(w, "\n=== assignment plan ===\n\n")
	for _, server := range plan.Servers {
		fmt.Fprintf(w, "%s: %s\n", server.Name, strings.Join(server.HostedServices(), ", "))
		for d := types.Dimension(0); d < types.NumDimensions; d++ {
			pct := 0.0
			if plan.Capacity[d] > 0 {
				pct = 100 * server.Usage[d] / plan.Capacity[d]
			}
			fmt.Fprintf(w, "  %-8s: %8.2f / %.2f  (%5.1f%% used)\n", d, server.Usage[d], plan.Capacity[d], pct)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "total servers: %d\n", len(plan.Servers))
}
