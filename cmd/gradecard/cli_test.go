package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/portfolio-cards/gradecard/internal/config"
	"github.com/portfolio-cards/gradecard/internal/grades"
	"github.com/portfolio-cards/gradecard/internal/gradestore"
	"github.com/portfolio-cards/gradecard/internal/gradestore/storetest"
	"github.com/portfolio-cards/gradecard/internal/journal"
)

// setupCLI points the global config at an in-memory grade store and a temp journal
func setupCLI(t *testing.T) *storetest.Store {
	t.Helper()
	store, srv := storetest.Serve(t, grades.NewSet().
		With(grades.Challenge, "Front-End", 8, 9).
		With(grades.Global, "Python", 6.5).
		With(grades.Checkpoint, "Java"))

	logger = zap.NewNop()
	cfg = config.DefaultConfig()
	cfg.BaseURL = srv.URL
	cfg.JournalPath = filepath.Join(t.TempDir(), "journal.db")
	t.Cleanup(func() { cfg = nil })
	return store
}

func newTestCmd() (*cobra.Command, *bytes.Buffer) {
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetContext(context.Background())
	return cmd, &out
}

func TestGradesList(t *testing.T) {
	setupCLI(t)
	cmd, out := newTestCmd()

	require.NoError(t, runGradesList(cmd, nil))

	want := "Challenge\n  Front-End: 8, 9\nGlobal\n  Python: 6.5\nCheckpoint\n  Java: \n"
	assert.Equal(t, want, out.String())
}

func TestGradesShow(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"sprints", []string{"Challenge", "Front-End"}, "Challenge - Front-End\n1ª sprint: 8\n2ª sprint: 9\n"},
		{"semesters", []string{"Global", "Python"}, "Global - Python\n1º semestre: 6.5\n"},
		{"empty", []string{"Checkpoint", "Java"}, "Checkpoint - Java\nSem notas cadastradas.\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCLI(t)
			cmd, out := newTestCmd()
			require.NoError(t, runGradesShow(cmd, tt.args))
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestGradesShowUnknownCategory(t *testing.T) {
	setupCLI(t)
	cmd, _ := newTestCmd()
	assert.ErrorIs(t, runGradesShow(cmd, []string{"Sprint", "Java"}), grades.ErrUnknownCategory)
}

func TestGradesAddEditDelete(t *testing.T) {
	store := setupCLI(t)

	cmd, out := newTestCmd()
	require.NoError(t, runGradesAdd(cmd, []string{"Checkpoint", "Java", "7"}))
	assert.Equal(t, "Nota adicionada com sucesso!\n", out.String())

	cmd, out = newTestCmd()
	require.NoError(t, runGradesEdit(cmd, []string{"Checkpoint", "Java", "7", "7.5"}))
	assert.Equal(t, "Nota alterada com sucesso!\n", out.String())

	cmd, out = newTestCmd()
	require.NoError(t, runGradesDelete(cmd, []string{"Challenge", "Front-End", "8"}))
	assert.Equal(t, "A nota foi excluída com sucesso!\n", out.String())

	set := store.Set(gradestore.DefaultCardID)
	java, _ := set.Scores(grades.Checkpoint, "Java")
	front, _ := set.Scores(grades.Challenge, "Front-End")
	assert.Equal(t, []float64{7.5}, java)
	assert.Equal(t, []float64{9}, front)

	db, err := journal.Open(cfg.JournalPath)
	require.NoError(t, err)
	defer db.Close()
	entries, err := db.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, journal.OpDelete, entries[0].Op)
}

func TestGradesAddInvalidSkipsStore(t *testing.T) {
	store := setupCLI(t)
	cmd, out := newTestCmd()

	err := runGradesAdd(cmd, []string{"Checkpoint", "Java", "sete"})
	assert.ErrorIs(t, err, grades.ErrInvalidScore)
	assert.Empty(t, out.String())
	assert.Empty(t, store.Requests())
}

func TestGradesDeleteFailure(t *testing.T) {
	store := setupCLI(t)
	store.FailNext(http.StatusInternalServerError, "erro")
	cmd, _ := newTestCmd()

	err := runGradesDelete(cmd, []string{"Challenge", "Front-End", "8"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Houve um erro ao tentar excluir a nota.")
	assert.True(t, gradestore.IsStatus(err, http.StatusInternalServerError))
}

func TestHistory(t *testing.T) {
	store := setupCLI(t)
	store.FailNext(http.StatusNotFound, "subject not found")

	cmd, _ := newTestCmd()
	require.Error(t, runGradesAdd(cmd, []string{"Global", "Física", "9"}))
	cmd, _ = newTestCmd()
	require.NoError(t, runGradesAdd(cmd, []string{"Global", "Python", "9"}))

	cmd, out := newTestCmd()
	historyLimit = 10
	require.NoError(t, runHistory(cmd, nil))

	text := out.String()
	assert.Contains(t, text, "Python")
	assert.Contains(t, text, "Física")
	assert.Contains(t, text, "404")
	assert.Less(t, strings.Index(text, "Python"), strings.Index(text, "Física"), "newest first")
}

func TestHistoryEmpty(t *testing.T) {
	setupCLI(t)
	cmd, out := newTestCmd()
	historyLimit = 10
	require.NoError(t, runHistory(cmd, nil))
	assert.Equal(t, "No mutations recorded.\n", out.String())
}

func TestHistoryDisabled(t *testing.T) {
	setupCLI(t)
	cfg.JournalPath = ""
	cmd, _ := newTestCmd()
	assert.Error(t, runHistory(cmd, nil))
}

func TestConfigInit(t *testing.T) {
	setupCLI(t)
	t.Chdir(t.TempDir())

	cmd, out := newTestCmd()
	require.NoError(t, runConfigInit(cmd, nil))
	assert.Contains(t, out.String(), config.ProjectPath())

	loaded, err := config.Load(config.ProjectPath())
	require.NoError(t, err)
	assert.Equal(t, cfg.BaseURL, loaded.BaseURL)

	cmd, _ = newTestCmd()
	assert.Error(t, runConfigInit(cmd, nil), "refuses to overwrite")
}

func TestFlagsOverrideEnvBeforeValidation(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	t.Setenv("GRADECARD_BASE_URL", "ftp://bad")
	baseURL = "http://localhost:3000"
	cardID = "7"
	t.Cleanup(func() {
		baseURL, cardID = "", ""
		cfg = nil
	})

	require.NoError(t, rootCmd.PersistentPreRunE(historyCmd, nil))
	assert.Equal(t, "http://localhost:3000", cfg.BaseURL)
	assert.Equal(t, "7", cfg.CardID)
}

// syncCounter is a log sink that counts flushes
type syncCounter struct {
	bytes.Buffer
	syncs int
}

func (s *syncCounter) Sync() error {
	s.syncs++
	return nil
}

func TestExecuteSyncsLoggerOnFailure(t *testing.T) {
	sink := &syncCounter{}
	logger = zap.New(zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		sink,
		zapcore.DebugLevel,
	))
	rootCmd.SetErr(io.Discard)
	t.Cleanup(func() {
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		configPath = ""
		logger = nil
	})

	missing := filepath.Join(t.TempDir(), "missing.yaml")
	err := execute([]string{"--config", missing, "history"})

	require.Error(t, err)
	assert.Equal(t, 1, sink.syncs)
}
