package publish

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/nifeed/internal/testutil"
)

const reportRoot = "/tools/buildreport"

func writeScript(t *testing.T, fsys afero.Fs, path string) {
	t.Helper()
	require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, afero.WriteFile(fsys, path, []byte("print('ok')"), 0o644))
}

func newPublisher(fsys afero.Fs, runner *testutil.Runner) Publisher {
	return Publisher{
		Runner:      runner,
		FS:          fsys,
		Python:      "python2",
		ReportRoot:  reportRoot,
		Product:     "Custom Devices",
		BaseVersion: "2024.1",
		BuildNumber: 7,
		Platform:    "Windows",
	}
}

func TestPublishInvokesAddBuildThenComplete(t *testing.T) {
	fsys := afero.NewMemMapFs()
	script := filepath.Join(reportRoot, "buildReportAPI", "buildReport.py")
	writeScript(t, fsys, script)
	runner := &testutil.Runner{}

	require.NoError(t, newPublisher(fsys, runner).Publish(context.Background(), "/feeds/2024.1/2024.1.7"))

	calls := runner.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "python2", calls[0].Name)
	identity := []string{script, "--product", "Custom Devices", "--version", "2024.1", "--build", "7", "--platform", "Windows"}
	assert.Equal(t, append(append([]string{}, identity...), "addBuild", "--path", "/feeds/2024.1/2024.1.7", "--phase", "u"), calls[0].Args)
	assert.Equal(t, append(append([]string{}, identity...), "setStatusCompleted"), calls[1].Args)
}

func TestPublishUsesConfiguredPhaseAndDefaultPython(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeScript(t, fsys, filepath.Join(reportRoot, "buildReportAPI", "buildReport.py"))
	runner := &testutil.Runner{}
	p := newPublisher(fsys, runner)
	p.Python = ""
	p.Phase = "r"

	require.NoError(t, p.Publish(context.Background(), "/b"))
	calls := runner.Calls()
	assert.Equal(t, DefaultPython, calls[0].Name)
	assert.Equal(t, "r", calls[0].Args[len(calls[0].Args)-1])
}

func TestPublishStopsWhenAddBuildFails(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeScript(t, fsys, filepath.Join(reportRoot, "buildReportAPI", "buildReport.py"))
	boom := errors.New("exit status 1")
	runner := &testutil.Runner{Hook: func(testutil.Call) error { return boom }}

	err := newPublisher(fsys, runner).Publish(context.Background(), "/b")
	require.ErrorIs(t, err, boom)
	assert.Len(t, runner.Calls(), 1)
}

func TestScriptFallsBackToNewestExport(t *testing.T) {
	fsys := afero.NewMemMapFs()
	older := filepath.Join(reportRoot, "export", "1.0", "1.0.3", "buildReportAPI", "buildReport.py")
	newer := filepath.Join(reportRoot, "export", "1.1", "1.1.2", "buildReportAPI", "buildReport.py")
	writeScript(t, fsys, older)
	writeScript(t, fsys, newer)
	testutil.TouchDir(t, fsys, filepath.Join(reportRoot, "export", "1.0"), 0)
	testutil.TouchDir(t, fsys, filepath.Join(reportRoot, "export", "1.1"), time.Hour)

	got, err := newPublisher(fsys, &testutil.Runner{}).Script()
	require.NoError(t, err)
	assert.Equal(t, newer, got)
}

func TestScriptNotFound(t *testing.T) {
	fsys := afero.NewMemMapFs()
	runner := &testutil.Runner{}

	err := newPublisher(fsys, runner).Publish(context.Background(), "/b")
	require.ErrorIs(t, err, ErrBuildReportNotFound)
	assert.Empty(t, runner.Calls())
}

func TestValidate(t *testing.T) {
	base := newPublisher(afero.NewMemMapFs(), &testutil.Runner{})
	require.NoError(t, base.Validate())

	cases := map[string]func(*Publisher){
		"report root":  func(p *Publisher) { p.ReportRoot = "" },
		"product":      func(p *Publisher) { p.Product = " " },
		"version":      func(p *Publisher) { p.BaseVersion = "" },
		"platform":     func(p *Publisher) { p.Platform = "" },
		"build number": func(p *Publisher) { p.BuildNumber = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := base
			mutate(&p)
			require.Error(t, p.Validate())
		})
	}
}
