// Package cli is the chimera command line
package cli

import (
	"context"

	"github.com/spf13/cobra"

	modkit "chimera/internal/modkit"
	"chimera/internal/platform/config"
	"chimera/internal/platform/logger"
	"chimera/internal/platform/store"
	analysisdom "chimera/internal/services/analysis/domain"
	analysismod "chimera/internal/services/analysis/module"
	historydom "chimera/internal/services/history/domain"
	historymod "chimera/internal/services/history/module"
)

// Execute runs the root command
func Execute() error {
	return NewRoot().Execute()
}

// NewRoot builds the command tree
func NewRoot() *cobra.Command {
	root := &cobra.Command{
		Use:           "chimera",
		Short:         "Plagiarism, AI likelihood and authenticity checks for student writing",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		AnalyzeCmd(),
		HistoryCmd(),
		VersionCmd(),
	)
	return root
}

// env is what one command invocation runs against
type env struct {
	analysis analysisdom.ServicePort
	history  historydom.ServicePort // nil when HISTORY_DRIVER is none
	close    func()
}

// openEnv is a seam so command tests can run without a store
var openEnv = func(ctx context.Context) (*env, error) {
	root := config.New().Prefix("CHIMERA_")
	hopts := historymod.FromConfig(root)

	st, err := store.Open(ctx, hopts.StoreConfig("chimera-cli"), store.WithLogger(*logger.Get()))
	if err != nil {
		return nil, err
	}
	e := &env{close: func() { _ = st.Close(context.Background()) }}

	var ports analysismod.Ports
	if hopts.Enabled() {
		svc, err := historymod.NewService(modkit.Deps{Cfg: root, PG: st.PG, Lite: st.Lite}, hopts.Driver)
		if err != nil {
			e.close()
			return nil, err
		}
		if err := svc.EnsureSchema(ctx); err != nil {
			e.close()
			return nil, err
		}
		e.history = svc
		ports.Recorder = historymod.Recorder(svc)
	}

	e.analysis, err = analysismod.BuildService(analysismod.FromConfig(root), ports)
	if err != nil {
		e.close()
		return nil, err
	}
	return e, nil
}
