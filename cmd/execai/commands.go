package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/execai"
	bt "github.com/fwojciec/execai/bubbletea"
	"github.com/fwojciec/execai/goldmark"
	"github.com/spf13/cobra"
)

const renderWidth = 80

// newRootCmd builds the command tree. All environment input arrives in env.
func newRootCmd(env environment) *cobra.Command {
	cfg := config{}
	root := &cobra.Command{
		Use:           "execai",
		Short:         "Executive Chief of Staff console backed by Gemini",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfg.apiKey, "api-key", "", "API key (overrides GEMINI_API_KEY / API_KEY)")
	flags.StringVar(&cfg.dataDir, "data-dir", defaultDataDir(env.home), "Transcript, log and telemetry directory")
	flags.StringVar(&cfg.store, "store", storeJSON, "Transcript store: json, sqlite")
	flags.StringVar(&cfg.model, "model", "", "Chat model ID (default: provider default)")
	flags.StringVar(&cfg.contextPath, "context", "", "Briefing JSON file (default: built-in sample day)")
	flags.StringVar(&cfg.logLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// withApp builds the dependency graph for one command run and tears it
	// down afterwards.
	withApp := func(fn func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) (err error) {
			ctx := cmd.Context()
			a, err := newApp(ctx, cfg, env)
			if err != nil {
				return err
			}
			defer func() {
				err = errors.Join(err, a.Close(context.WithoutCancel(ctx)))
			}()
			return fn(ctx, a, cmd, args)
		}
	}

	chat := newChatCmd(withApp)
	root.RunE = chat.RunE
	root.AddCommand(
		chat,
		newAskCmd(withApp),
		newResetCmd(withApp),
		newPlanCmd(withApp),
		newTaskCmd(withApp),
		newMeetingCmd(withApp),
		newAvatarCmd(withApp),
		newBriefCmd(withApp),
	)
	return root
}

type runFunc = func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error

type appRunner = func(runFunc) func(*cobra.Command, []string) error

func newChatCmd(withApp appRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Open the interactive console",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *app, _ *cobra.Command, _ []string) error {
			updates, notify := bt.Notifier()
			session, err := a.session(ctx, execai.WithNotify(notify))
			if err != nil {
				return err
			}
			m := bt.New(session, a.briefing, execai.DefaultTheme(), bt.WithUpdates(updates))
			if err := bt.Run(ctx, m); err != nil {
				return fmt.Errorf("TUI: %w", err)
			}
			return nil
		}),
	}
}

func newAskCmd(withApp appRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <text>",
		Short: "Send one message and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			session, err := a.session(ctx)
			if err != nil {
				return err
			}
			if !session.Send(ctx, strings.Join(args, " "), a.briefing) {
				return errors.New("nothing to send")
			}
			transcript := session.Transcript()
			printReply(cmd.OutOrStdout(), transcript[len(transcript)-1])
			return nil
		}),
	}
}

func printReply(w io.Writer, msg execai.Message) {
	fmt.Fprintln(w, strings.TrimRight(goldmark.Render(msg.Content, renderWidth, execai.DefaultTheme()), "\n"))
	if len(msg.Sources) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Sources:")
	for i, s := range msg.Sources {
		fmt.Fprintf(w, "  [%d] %s <%s>\n", i+1, goldmark.Sanitize(s.Title), goldmark.Sanitize(s.URI))
	}
}

func newResetCmd(withApp appRunner) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear the stored transcript",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
			session, err := a.storedSession(ctx)
			if err != nil {
				return err
			}
			session.RequestReset()
			if !yes {
				confirmed, err := confirm(cmd, bt.StatusConfirm)
				if err != nil {
					session.CancelReset()
					return err
				}
				if !confirmed {
					session.CancelReset()
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}
			if !session.ConfirmReset(ctx) {
				return errors.New("reset was not requested")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Session reset.")
			return nil
		}),
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}

// confirm asks a y/N question on the command's input. Anything other than
// y or yes declines.
func confirm(cmd *cobra.Command, question string) (bool, error) {
	question = strings.TrimSuffix(question, " (y/n)")
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", question)
	answer, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	v := strings.ToLower(strings.TrimSpace(answer))
	return v == "y" || v == "yes", nil
}

func newPlanCmd(withApp appRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Analyze today's calendar and inbox",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
			analyst, err := a.analyst(ctx)
			if err != nil {
				return err
			}
			analysis, err := analyst.AnalyzeDailyPlan(ctx, a.briefing.Events, a.briefing.Emails)
			if err != nil {
				return fmt.Errorf("analyze daily plan: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(goldmark.Render(analysis, renderWidth, execai.DefaultTheme()), "\n"))
			return nil
		}),
	}
}

func newTaskCmd(withApp appRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "task <id>",
		Short: "Summarize a task into sub-tasks",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			task, ok := a.briefing.FindTask(args[0])
			if !ok {
				return fmt.Errorf("task %q not found", args[0])
			}
			analyst, err := a.analyst(ctx)
			if err != nil {
				return err
			}
			summary, err := analyst.SummarizeTask(ctx, task)
			if err != nil {
				return fmt.Errorf("summarize task: %w", err)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, task.Title)
			fmt.Fprintln(w)
			fmt.Fprintln(w, summary.Summary)
			printList(w, "Sub-tasks", summary.Subtasks)
			return nil
		}),
	}
}

func newMeetingCmd(withApp appRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "meeting <file|->",
		Short: "Summarize a meeting transcript",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("read meeting transcript: %w", err)
			}
			analyst, err := a.analyst(ctx)
			if err != nil {
				return err
			}
			summary, err := analyst.SummarizeMeeting(ctx, string(data))
			if err != nil {
				return fmt.Errorf("summarize meeting: %w", err)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, summary.Summary)
			printList(w, "Action items", summary.ActionItems)
			printList(w, "Decisions", summary.Decisions)
			return nil
		}),
	}
}

func printList(w io.Writer, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", heading)
	for _, it := range items {
		fmt.Fprintf(w, "  - %s\n", it)
	}
}

func newAvatarCmd(withApp appRunner) *cobra.Command {
	var role, company, out string
	cmd := &cobra.Command{
		Use:   "avatar",
		Short: "Generate a profile headshot",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
			portraitist, err := a.portraitist(ctx)
			if err != nil {
				return err
			}
			img, err := portraitist.GenerateAvatar(ctx, role, company)
			if err != nil {
				return fmt.Errorf("generate avatar: %w", err)
			}
			if out == "" {
				out = "avatar" + imageExtension(img.MIMEType)
			}
			if err := os.WriteFile(out, img.Data, 0o644); err != nil {
				return fmt.Errorf("write avatar: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Avatar written to %s\n", out)
			return nil
		}),
	}
	cmd.Flags().StringVar(&role, "role", "Chief Executive Officer", "Executive role")
	cmd.Flags().StringVar(&company, "company", "a high-growth startup", "Company description")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default avatar.<ext>)")
	return cmd
}

// imageExtension maps an image MIME type to a file extension, defaulting
// to .png.
func imageExtension(mimeType string) string {
	switch mimeType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	}
	if exts, err := mime.ExtensionsByType(mimeType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ".png"
}

// Briefing kinds accepted by the brief command.
const (
	briefPlanner = "planner"
	briefInbox   = "inbox"
	briefText    = "text"
)

func newBriefCmd(withApp appRunner) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:       "brief planner|inbox|text",
		Short:     "Synthesize a spoken briefing to a WAV file",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{briefPlanner, briefInbox, briefText},
		RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			narrator, err := a.narrator(ctx)
			if err != nil {
				return err
			}

			var script string
			switch args[0] {
			case briefPlanner:
				script = execai.PlannerNarration(a.briefing.Tasks)
			case briefInbox:
				script = execai.InboxNarration(a.briefing.Emails)
			case briefText:
				analyst, err := a.analyst(ctx)
				if err != nil {
					return err
				}
				analysis, err := analyst.AnalyzeDailyPlan(ctx, a.briefing.Events, a.briefing.Emails)
				if err != nil {
					return fmt.Errorf("analyze daily plan: %w", err)
				}
				script = execai.SummaryNarration(analysis)
			}
			a.logger.Debug("briefing script", "kind", args[0], "script", script)

			audio, err := narrator.Speak(ctx, script)
			if err != nil {
				return fmt.Errorf("speak: %w", err)
			}
			if out == "" {
				out = "briefing-" + args[0] + ".wav"
			}
			if err := saveWAV(out, audio); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Briefing written to %s\n", out)
			return nil
		}),
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default briefing-<kind>.wav)")
	return cmd
}

func saveWAV(path string, audio execai.Audio) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create briefing file: %w", err)
	}
	if err := writeWAV(f, audio.Data, audio.SampleRate); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
