package locate

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/nifeed/internal/testutil"
	"github.com/conn-castle/nifeed/internal/warnings"
)

const exportRoot = "/exports"

func newLocator(fsys afero.Fs, ex Exclusions) Locator {
	return Locator{FS: fsys, Exclusions: ex}
}

func query(ft FeedType) Query {
	return Query{ExportRoot: exportRoot, Compiler: "2019", ReleaseVersion: "1.0", FeedType: ft}
}

func TestLocateSelectsNewestBuildPerComponent(t *testing.T) {
	fsys := afero.NewMemMapFs()
	testutil.WriteBuild(t, fsys, exportRoot, testutil.Build{
		Component: "A", Release: "1.0", BuildDir: "b1", Compiler: "2019",
		Packages: []string{"a_1.0.0.nipkg"}, Age: 0,
	})
	testutil.WriteBuild(t, fsys, exportRoot, testutil.Build{
		Component: "A", Release: "1.0", BuildDir: "b2", Compiler: "2019",
		Packages: []string{"a_1.0.1.nipkg"}, Age: time.Hour,
	})
	testutil.WriteBuild(t, fsys, exportRoot, testutil.Build{
		Component: "B", Release: "1.0", BuildDir: "b9", Compiler: "2019",
		Packages: []string{"b_1.0.0.nipkg"}, Age: time.Minute,
	})

	got, err := newLocator(fsys, nil).Locate(query(FeedTypeRelease))
	require.NoError(t, err)

	b2 := testutil.Build{Component: "A", Release: "1.0", BuildDir: "b2", Compiler: "2019"}
	b9 := testutil.Build{Component: "B", Release: "1.0", BuildDir: "b9", Compiler: "2019"}
	assert.Equal(t, []string{
		filepath.Join(b2.InstallerDir(exportRoot), "a_1.0.1.nipkg"),
		filepath.Join(b9.InstallerDir(exportRoot), "b_1.0.0.nipkg"),
	}, got.Packages())
	assert.Equal(t, []string{b2.InstallerDir(exportRoot), b9.InstallerDir(exportRoot)}, got.InstallerDirs())
	assert.Equal(t, "A", got.Artifacts[0].Component)
	assert.Equal(t, b2.BuildPath(exportRoot), got.Artifacts[0].BuildDir)
	assert.Empty(t, got.Warnings)
}

func TestLocateNewestBuildIsByModTimeNotName(t *testing.T) {
	fsys := afero.NewMemMapFs()
	testutil.WriteBuild(t, fsys, exportRoot, testutil.Build{
		Component: "A", Release: "1.0", BuildDir: "b9", Compiler: "2019",
		Packages: []string{"old.nipkg"}, Age: 0,
	})
	testutil.WriteBuild(t, fsys, exportRoot, testutil.Build{
		Component: "A", Release: "1.0", BuildDir: "b10", Compiler: "2019",
		Packages: []string{"new.nipkg"}, Age: time.Hour,
	})

	got, err := newLocator(fsys, nil).Locate(query(FeedTypeRelease))
	require.NoError(t, err)
	require.Len(t, got.Artifacts, 1)
	assert.Equal(t, "new.nipkg", filepath.Base(got.Artifacts[0].Package))
}

func TestLocateExclusions(t *testing.T) {
	fsys := afero.NewMemMapFs()
	for _, c := range []string{"A", "monitor", "scratch"} {
		testutil.WriteBuild(t, fsys, exportRoot, testutil.Build{
			Component: c, Release: "1.0", BuildDir: "b1", Compiler: "2019",
			Packages: []string{c + ".nipkg"},
		})
	}
	ex := Exclusions{
		FeedTypeAll:     NewSet("scratch"),
		FeedTypeRelease: NewSet("monitor"),
	}

	cases := []struct {
		feedType FeedType
		want     []string
		excluded []string
	}{
		{feedType: FeedTypeRelease, want: []string{"A"}, excluded: []string{"monitor", "scratch"}},
		{feedType: FeedTypeTest, want: []string{"A", "monitor"}, excluded: []string{"scratch"}},
		{feedType: FeedTypeAll, want: []string{"A", "monitor"}, excluded: []string{"scratch"}},
	}
	for _, tc := range cases {
		t.Run(string(tc.feedType), func(t *testing.T) {
			got, err := newLocator(fsys, ex).Locate(query(tc.feedType))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.Components())
			assert.Equal(t, tc.excluded, got.Excluded)
		})
	}
}

func TestLocateComponentWithoutReleaseWarns(t *testing.T) {
	fsys := afero.NewMemMapFs()
	testutil.WriteBuild(t, fsys, exportRoot, testutil.Build{
		Component: "A", Release: "1.0", BuildDir: "b1", Compiler: "2019",
		Packages: []string{"a.nipkg"},
	})
	testutil.WriteBuild(t, fsys, exportRoot, testutil.Build{
		Component: "B", Release: "2.0", BuildDir: "b1", Compiler: "2019",
		Packages: []string{"b.nipkg"},
	})

	got, err := newLocator(fsys, nil).Locate(query(FeedTypeRelease))
	require.NoError(t, err)
	require.Len(t, got.Artifacts, 1)
	require.Len(t, got.Warnings, 1)
	w := got.Warnings[0]
	assert.Equal(t, warnings.CodeComponentNoBuild, w.Code)
	assert.Equal(t, "B", w.Subject)
	assert.True(t, w.NoiseSuppressible)
}

func TestLocateNewestBuildWithoutPackageContributesNothing(t *testing.T) {
	fsys := afero.NewMemMapFs()
	testutil.WriteBuild(t, fsys, exportRoot, testutil.Build{
		Component: "A", Release: "1.0", BuildDir: "b1", Compiler: "2019",
		Packages: []string{"a.nipkg"}, Age: 0,
	})
	// Newer build only has output for another compiler.
	testutil.WriteBuild(t, fsys, exportRoot, testutil.Build{
		Component: "A", Release: "1.0", BuildDir: "b2", Compiler: "2021",
		Packages: []string{"a.nipkg"}, Age: time.Hour,
	})

	got, err := newLocator(fsys, nil).Locate(query(FeedTypeRelease))
	require.NoError(t, err)
	assert.Empty(t, got.Artifacts)
	require.Len(t, got.Warnings, 1)
	assert.Equal(t, warnings.CodeComponentNoPackage, got.Warnings[0].Code)
	// The build still counts for manifest lookup.
	b2 := testutil.Build{Component: "A", Release: "1.0", BuildDir: "b2", Compiler: "2019"}
	assert.Equal(t, []string{b2.InstallerDir(exportRoot)}, got.InstallerDirs())
}

func TestLocateMultiplePackagesPicksFirstSorted(t *testing.T) {
	fsys := afero.NewMemMapFs()
	testutil.WriteBuild(t, fsys, exportRoot, testutil.Build{
		Component: "A", Release: "1.0", BuildDir: "b1", Compiler: "2019",
		Packages: []string{"z.nipkg", "readme.txt", "m.NIPKG"},
	})

	got, err := newLocator(fsys, nil).Locate(query(FeedTypeRelease))
	require.NoError(t, err)
	require.Len(t, got.Artifacts, 1)
	assert.Equal(t, "m.NIPKG", filepath.Base(got.Artifacts[0].Package))
	require.Len(t, got.Warnings, 1)
	assert.Equal(t, warnings.CodeComponentMultiplePackages, got.Warnings[0].Code)
	assert.Equal(t, []string{"m.NIPKG", "z.nipkg"}, got.Warnings[0].Details)
}

func TestLocateCustomSubpathAndExtension(t *testing.T) {
	fsys := afero.NewMemMapFs()
	dir := filepath.Join(exportRoot, "A", "ni", "export", "release", "1.0", "b1", "2019", "installer")
	require.NoError(t, fsys.MkdirAll(dir, 0o755))
	require.NoError(t, afero.WriteFile(fsys, filepath.Join(dir, "a.pkg"), []byte("x"), 0o644))

	l := Locator{FS: fsys, ExportSubpath: "ni/export/release", Extension: ".pkg"}
	got, err := l.Locate(query(FeedTypeRelease))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.pkg")}, got.Packages())
}

func TestLocateMissingExportRoot(t *testing.T) {
	_, err := newLocator(afero.NewMemMapFs(), nil).Locate(query(FeedTypeRelease))
	require.ErrorIs(t, err, ErrExportRootNotFound)
}

func TestLocateRequiresCompilerAndRelease(t *testing.T) {
	fsys := afero.NewMemMapFs()
	l := newLocator(fsys, nil)

	_, err := l.Locate(Query{ExportRoot: exportRoot, ReleaseVersion: "1.0"})
	require.Error(t, err)

	_, err = l.Locate(Query{ExportRoot: exportRoot, Compiler: "2019"})
	require.Error(t, err)
}

func TestLocateEmptyExportRoot(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll(exportRoot, 0o755))

	got, err := newLocator(fsys, nil).Locate(query(FeedTypeRelease))
	require.NoError(t, err)
	assert.Empty(t, got.Artifacts)
	assert.Empty(t, got.Warnings)
}
