// Command chatcli talks to the election assistant pipeline from a terminal,
// without the HTTP server, and can tail the chat events published to NATS.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"election-assistant-be/internal/bootstrap"
	"election-assistant-be/internal/config"
	"election-assistant-be/internal/constant"
	"election-assistant-be/internal/dto"
	"election-assistant-be/internal/pkg/logger"
	"election-assistant-be/internal/service"
	"election-assistant-be/pkg/events"
	pktNats "election-assistant-be/pkg/nats"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	userID   string
	csvPath  string
	logLevel string
	verbose  bool
}

func rootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "chatcli",
		Short: "Chat with the election assistant from the terminal",
		Long: `chatcli runs the same classification and reply pipeline as the HTTP
server, in-process. Type a message and press enter; /reset clears the
conversation, /session shows what the assistant remembers, /quit exits.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), opts, func(ctx context.Context, svc service.IChatbotService) error {
				return repl(ctx, svc, opts, cmd.InOrStdin(), cmd.OutOrStdout())
			})
		},
	}

	cmd.PersistentFlags().StringVar(&opts.userID, "user", "console", "Session key to chat as")
	cmd.PersistentFlags().StringVar(&opts.csvPath, "csv", "", "Candidate CSV path (overrides CANDIDATES_CSV_PATH)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Show intent, language and vibe for each reply")

	cmd.AddCommand(askCmd(opts), eventsCmd(opts), versionCmd())
	return cmd
}

func askCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <message>",
		Short: "Ask a single question and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), opts, func(ctx context.Context, svc service.IChatbotService) error {
				res, err := svc.Chat(ctx, opts.userID, strings.Join(args, " "))
				if err != nil {
					return err
				}
				printReply(cmd.OutOrStdout(), res, opts.verbose)
				return nil
			})
		},
	}
}

func eventsCmd(opts *options) *cobra.Command {
	var (
		natsURL   string
		eventType string
	)

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Tail chat events from NATS",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log, err := consoleLogger(opts.logLevel)
			if err != nil {
				return err
			}
			if natsURL == "" {
				natsURL = config.Load().App.NatsURL
			}
			if natsURL == "" {
				return fmt.Errorf("no NATS URL: pass --nats-url or set NATS_URL")
			}

			sub, err := pktNats.NewSubscriber(natsURL, log)
			if err != nil {
				return err
			}
			defer sub.Close()

			out := cmd.OutOrStdout()
			return sub.Follow(ctx, eventType, func(_ context.Context, e events.Event) error {
				data, err := json.Marshal(e.Payload())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s %s %s\n",
					color.HiBlackString(e.Timestamp().Format("15:04:05")),
					color.YellowString(e.EventType()),
					data)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&natsURL, "nats-url", "", "NATS server URL (defaults to NATS_URL)")
	cmd.Flags().StringVar(&eventType, "type", "", "Only show this event type, e.g. CHAT_MESSAGE_PROCESSED")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", constant.AppName, constant.AppVersion)
		},
	}
}

func consoleLogger(level string) (*logger.ZapLogger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return logger.NewConsoleLogger(lvl), nil
}

func withService(ctx context.Context, opts *options, fn func(context.Context, service.IChatbotService) error) error {
	log, err := consoleLogger(opts.logLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	cfg := config.Load()
	if opts.csvPath != "" {
		cfg.Candidates.Source = config.CandidateSourceCSV
		cfg.Candidates.CSVPath = opts.csvPath
	}
	// Console sessions live as long as the process
	cfg.Chat.SessionTTL = 0

	pipeline, err := bootstrap.NewPipeline(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer pipeline.Close()

	return fn(ctx, service.NewChatbotService(pipeline.Deps))
}

func repl(ctx context.Context, svc service.IChatbotService, opts *options, in io.Reader, out io.Writer) error {
	color.New(color.FgCyan, color.Bold).Fprintf(out, "%s %s\n", constant.AppName, constant.AppVersion)
	fmt.Fprintln(out, color.HiBlackString("/reset, /session, /quit"))

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, color.GreenString("ikaw> "))
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "/quit", "/exit":
			return nil
		case "/reset":
			svc.ResetSession(ctx, opts.userID)
			fmt.Fprintln(out, color.HiBlackString("(conversation cleared)"))
			continue
		case "/session":
			printSession(out, svc, opts.userID)
			continue
		}

		res, err := svc.Chat(ctx, opts.userID, line)
		if err != nil {
			return err
		}
		printReply(out, res, opts.verbose)
	}
}

func printReply(out io.Writer, res *dto.ChatResult, verbose bool) {
	fmt.Fprintf(out, "%s %s\n", color.CyanString("mayombo>"), res.Reply)
	if verbose {
		meta := fmt.Sprintf("[intent=%s confidence=%.2f language=%s vibe=%s", res.Intent, res.Confidence, res.Language, res.Vibe)
		if res.FromContext {
			meta += " from_context"
		}
		fmt.Fprintln(out, color.HiBlackString(meta+"]"))
	}
	fmt.Fprintln(out)
}

func printSession(out io.Writer, svc service.IChatbotService, userID string) {
	snap, ok := svc.Session(userID)
	if !ok {
		fmt.Fprintln(out, color.HiBlackString("(no conversation yet)"))
		return
	}
	data, _ := json.MarshalIndent(snap, "", "  ")
	fmt.Fprintln(out, string(data))
}
