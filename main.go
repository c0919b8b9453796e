package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/xerrors"

	"github.com/khaledhikmat/vs-robot-eye/mode"
	"github.com/khaledhikmat/vs-robot-eye/pipeline"
	"github.com/khaledhikmat/vs-robot-eye/service/channel"
	"github.com/khaledhikmat/vs-robot-eye/service/config"
	"github.com/khaledhikmat/vs-robot-eye/service/data"
	"github.com/khaledhikmat/vs-robot-eye/service/inference"
	"github.com/khaledhikmat/vs-robot-eye/service/landmark"
	"github.com/khaledhikmat/vs-robot-eye/service/lgr"
	"github.com/khaledhikmat/vs-robot-eye/service/llm"
	"github.com/khaledhikmat/vs-robot-eye/service/robot"
)

type modeEntry struct {
	short string
	proc  mode.Processor
	// vision modes load the detector and the landmark sidecar
	vision bool
}

var modeProcessors = map[string]modeEntry{
	"client": {"Connect to the robot and show the annotated image stream", mode.Client, true},
	"probe":  {"Print the robot service descriptor", mode.Probe, false},
	"llm":    {"Talk to the local language model", mode.LLM, false},
}

var imagePath string

// The window has to stay on the main thread
func init() {
	runtime.LockOSThread()
}

func main() {
	rootCtx := context.Background()
	canxCtx, canxFn := context.WithCancel(rootCtx)
	defer canxFn()

	// Hook up a signal handler to cancel the context
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		lgr.Logger.Info(
			"received kill signal",
			slog.Any("signal", sig),
		)
		canxFn()
	}()

	rootCmd := &cobra.Command{
		Use:           "robot-eye",
		Short:         "Robot vision client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			// Load env vars if we are in DEV mode
			if os.Getenv("RUN_TIME_ENV") == "dev" || os.Getenv("RUN_TIME_ENV") == "" {
				if err := godotenv.Load(); err != nil {
					lgr.Logger.Warn("no .env file loaded", lgr.Error(err))
				}
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMode(cmd.Context(), "client", args)
		},
	}

	for name, entry := range modeProcessors {
		rootCmd.AddCommand(&cobra.Command{
			Use:   name,
			Short: entry.short,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMode(cmd.Context(), name, args)
			},
		})
	}
	rootCmd.PersistentFlags().StringVar(&imagePath, "image", "", "image file sent along with an llm prompt")

	if err := rootCmd.ExecuteContext(canxCtx); err != nil {
		lgr.Logger.Error("robot eye exited", lgr.Error(err))
		canxFn()
		os.Exit(1)
	}
}

func runMode(canxCtx context.Context, modeType string, args []string) error {
	entry, ok := modeProcessors[modeType]
	if !ok {
		return xerrors.Errorf("invalid mode %s", modeType)
	}

	// Config service
	cfgSvc := config.NewEnv()
	lgr.Init(cfgSvc.GetLogsFolder(), cfgSvc.GetLogLevel())

	// Create the services needed for the mode processor
	// They can be overridden by the mode processor with different implementations
	dataSvc := data.NewFilesDB(cfgSvc)
	defer dataSvc.Close()

	svcs := pipeline.ServicesFactory{
		CfgSvc:       cfgSvc,
		DataSvc:      dataSvc,
		ChannelSvc:   channel.NewWebsocket(cfgSvc),
		InferenceSvc: inference.NewFake(),
		LandmarkSvc:  landmark.NewFake(nil, nil),
		RobotSvc:     robot.NewHTTP(cfgSvc),
		LLMSvc:       llm.NewOllama(cfgSvc),
	}

	if entry.vision {
		inferenceSvc, err := inference.NewYolo8(cfgSvc)
		if err != nil {
			return xerrors.Errorf("error loading the object detector: %w", err)
		}
		defer inferenceSvc.Close()
		svcs.InferenceSvc = inferenceSvc

		landmarkSvc := landmark.NewSidecar(cfgSvc)
		defer landmarkSvc.Close()
		svcs.LandmarkSvc = landmarkSvc
	}

	lgr.Logger.Info("mode starting", slog.String("mode", modeType))

	err := entry.proc(canxCtx, svcs, mode.Options{
		Args:      args,
		ImagePath: imagePath,
	})
	if err != nil {
		return xerrors.Errorf("mode %s: %w", modeType, err)
	}

	lgr.Logger.Info("mode exited", slog.String("mode", modeType))
	return nil
}
