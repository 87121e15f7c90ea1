// Package cli implements the ghost CLI commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rcliao/ghost/internal/config"
	"github.com/rcliao/ghost/internal/ghost"
	"github.com/rcliao/ghost/internal/host"
	"github.com/rcliao/ghost/internal/logging"
	"github.com/rcliao/ghost/internal/schedule"
	"github.com/rcliao/ghost/internal/store"
)

var (
	dbPath     string
	configPath string
	formatFlag string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "ghost",
	Short: "A scripted chat assistant for the terminal",
	Long: "Ghost is a small chat assistant: tasks, notes, reminders, trackers, quizzes and games.\n" +
		"Run 'ghost chat' for an interactive session or 'ghost say <text>' for a single command.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $GHOST_DB or ~/.ghost/ghost.db)")
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: $GHOST_CONFIG or ~/.ghost/config.yaml)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "text", "Output format: json or text")
}

func getConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultPath()
}

func loadConfig() *config.Config {
	cfg, err := config.Load(getConfigPath())
	if err != nil {
		exitErr("load config", err)
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	return cfg
}

func openRecords(cfg *config.Config) (*store.Records, *store.SQLiteKV) {
	kv, err := store.NewSQLiteKV(cfg.DBPath)
	if err != nil {
		exitErr("open store", err)
	}
	return store.NewRecords(kv), kv
}

func newLogger(cfg *config.Config) *zap.Logger {
	log, err := logging.New(cfg.Logging)
	if err != nil {
		exitErr("init logging", err)
	}
	return log
}

// session bundles an engine with what must be closed after it.
type session struct {
	engine *ghost.Engine
	kv     *store.SQLiteKV
	sched  *schedule.TimerScheduler
	log    *zap.Logger
}

func (s *session) Close() {
	s.sched.Stop()
	s.kv.Close()
	_ = s.log.Sync()
}

func newSession(cfg *config.Config, presenter ghost.Presenter) *session {
	log := newLogger(cfg)
	records, kv := openRecords(cfg)
	sched := schedule.NewTimerScheduler()

	var speaker ghost.Speaker = host.NopSpeaker{}
	if s, ok := host.NewCommandSpeaker(); ok {
		speaker = s
	} else {
		log.Debug("no speech program found, voice output disabled")
	}

	deadline, _ := cfg.QuizDeadline()
	work, _ := cfg.PomodoroWork()
	engine := ghost.New(ghost.Deps{
		Records:   records,
		Scheduler: sched,
		Presenter: presenter,
		Speaker:   speaker,
		Notifier:  &host.DesktopNotifier{Logger: log},
		Links:     host.BrowserOpener{},
		Logger:    log,
	}, ghost.Options{
		QuizQuestions: cfg.Quiz.Questions,
		QuizDeadline:  deadline,
		PomodoroWork:  work,
		HistoryLimit:  cfg.History.Limit,
		Voice:         cfg.Voice,
		Notify:        cfg.Notify,
	})
	return &session{engine: engine, kv: kv, sched: sched, log: log}
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
