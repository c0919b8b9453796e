package mode

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/khaledhikmat/vs-robot-eye/model"
	"github.com/khaledhikmat/vs-robot-eye/pipeline"
)

// Probe prints the robot service descriptor and exits
func Probe(canxCtx context.Context, svcs pipeline.ServicesFactory, _ Options) error {
	desc, err := svcs.RobotSvc.Describe(canxCtx)
	if err != nil {
		return fmt.Errorf("error describing robot service %s: %w", svcs.CfgSvc.GetRobotServiceURL(), err)
	}

	printDescriptor(os.Stdout, desc)
	return nil
}

func printDescriptor(w io.Writer, desc model.RobotDescriptor) {
	title := color.New(color.FgCyan, color.Bold).SprintFunc()
	state := color.New(color.FgRed).SprintFunc()
	if desc.IsRunning {
		state = color.New(color.FgGreen).SprintFunc()
	}

	fmt.Fprintf(w, "%s %s (%s)\n", title("Service:"), desc.Name, desc.SimpleName)
	fmt.Fprintf(w, "%s %s\n", title("Type:"), desc.TypeKey)
	fmt.Fprintf(w, "%s %s\n", title("Running:"), state(desc.IsRunning))
	fmt.Fprintf(w, "%s %d\n", title("Peers:"), len(desc.Config.Peers))

	names := make([]string, 0, len(desc.Config.Peers))
	for name := range desc.Config.Peers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		peer := desc.Config.Peers[name]
		fmt.Fprintf(w, "  %-12s %s [%s]\n", name, peer.Name, peer.Type)
	}

	fmt.Fprintf(w, "%s %v\n", title("Gestures:"), desc.GetGestures())
}
