package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fileview/internal/fileerr"
	"fileview/internal/model"
	serviceMocks "fileview/internal/service/mocks"
	"fileview/internal/storage"
	storeMocks "fileview/internal/storage/mocks"
)

type fakePicker struct {
	raw *model.RawFile
	err error
}

func (p fakePicker) Pick(context.Context) (*model.RawFile, error) { return p.raw, p.err }

type harness struct {
	picker model.Picker
	fs     *storeMocks.MockFilesystem
	opener *serviceMocks.MockFileOpener
	recent *serviceMocks.MockRecentFilesStore
	built  int
	closed int
}

func newHarness() *harness {
	return &harness{
		fs:     new(storeMocks.MockFilesystem),
		opener: new(serviceMocks.MockFileOpener),
		recent: new(serviceMocks.MockRecentFilesStore),
	}
}

func (h *harness) factory(context.Context) (*Services, func() error, error) {
	h.built++
	return &Services{Filesystem: h.fs, Opener: h.opener, Recent: h.recent, Picker: h.picker}, func() error {
		h.closed++
		return nil
	}, nil
}

func run(t *testing.T, root *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestTypes(t *testing.T) {
	h := newHarness()
	out, _, err := run(t, NewRootCommand(h.factory), "types")

	require.NoError(t, err)
	assert.Contains(t, out, "TYPE")
	assert.Contains(t, out, "PDF Document")
	assert.Contains(t, out, "xlsx")
	assert.Zero(t, h.built, "types must not build services")
}

func TestClassify(t *testing.T) {
	h := newHarness()
	out, _, err := run(t, NewRootCommand(h.factory), "classify", "report.PDF", "archive.zip")

	require.NoError(t, err)
	assert.Regexp(t, `report\.PDF\s+PDF\s+PDF Document\s+yes`, out)
	assert.Regexp(t, `archive\.zip\s+UNKNOWN\s+.*\s+no`, out)
}

func TestClassify_NoArgs(t *testing.T) {
	_, _, err := run(t, NewRootCommand(newHarness().factory), "classify")

	require.Error(t, err)
	assert.Equal(t, ExitUsage, ExitCode(err))
	assert.Contains(t, err.Error(), "Example:")
}

func TestOpen_ProviderURI(t *testing.T) {
	h := newHarness()
	uri := "s3://docs/q3/summary.xlsx"
	h.fs.On("Stat", mock.Anything, uri).Return(storage.FileInfo{URI: uri, Size: 2048}, nil)
	h.opener.On("Open", mock.Anything, mock.MatchedBy(func(d model.FileDescriptor) bool {
		return d.URI == uri && d.Name == "summary.xlsx" && d.Type == model.TypeExcel && d.Size == 2048
	})).Return(nil).Once()
	h.recent.On("SaveRecentFile", mock.Anything, mock.AnythingOfType("model.FileDescriptor")).
		Return([]model.FileDescriptor{}, nil).Once()

	out, _, err := run(t, NewRootCommand(h.factory), "open", uri)

	require.NoError(t, err)
	assert.Equal(t, "Opened summary.xlsx (Excel Spreadsheet, 2 KB)\n", out)
	assert.Equal(t, 1, h.closed)
	h.opener.AssertExpectations(t)
	h.recent.AssertExpectations(t)
}

func TestOpen_PathBecomesFileURI(t *testing.T) {
	h := newHarness()
	h.fs.On("Stat", mock.Anything, mock.Anything).Return(storage.FileInfo{}, errors.New("stat failed"))
	h.opener.On("Open", mock.Anything, mock.MatchedBy(func(d model.FileDescriptor) bool {
		return storage.IsLocalURI(d.URI) && d.Name == "Custom.txt" && d.Size == 0
	})).Return(nil)
	h.recent.On("SaveRecentFile", mock.Anything, mock.Anything).Return(nil, errors.New("disk full"))

	_, stderr, err := run(t, NewRootCommand(h.factory), "open", "notes.md", "--name", "Custom.txt")

	require.NoError(t, err, "a recording failure does not fail the open")
	assert.Contains(t, stderr, "could not record recent file")
}

func TestOpen_FailureSkipsRecent(t *testing.T) {
	h := newHarness()
	h.fs.On("Stat", mock.Anything, mock.Anything).Return(storage.FileInfo{}, nil)
	openErr := fileerr.NoCompatibleApp("deck.pptx", "application/vnd.ms-powerpoint", nil)
	h.opener.On("Open", mock.Anything, mock.Anything).Return(openErr)

	root := NewRootCommand(h.factory)
	_, _, err := run(t, root, "open", "content://media/deck.pptx")

	require.Error(t, err)
	assert.True(t, fileerr.IsNoCompatibleApp(err))
	assert.Equal(t, ExitFailure, ExitCode(err))
	h.recent.AssertNotCalled(t, "SaveRecentFile", mock.Anything, mock.Anything)

	var stderr bytes.Buffer
	root.SetErr(&stderr)
	printError(root, err)
	assert.Contains(t, stderr.String(), "Hint: install")
}

func TestOpen_PickedFile(t *testing.T) {
	h := newHarness()
	h.picker = fakePicker{raw: &model.RawFile{URI: "file:///home/u/deck.pptx", Name: "deck.pptx", Size: 1024}}
	h.opener.On("Open", mock.Anything, mock.MatchedBy(func(d model.FileDescriptor) bool {
		return d.URI == "file:///home/u/deck.pptx" && d.Type == model.TypePowerPoint && d.Size == 1024
	})).Return(nil).Once()
	h.recent.On("SaveRecentFile", mock.Anything, mock.Anything).Return([]model.FileDescriptor{}, nil).Once()

	out, _, err := run(t, NewRootCommand(h.factory), "open")

	require.NoError(t, err)
	assert.Equal(t, "Opened deck.pptx (PowerPoint Presentation, 1 KB)\n", out)
	h.fs.AssertNotCalled(t, "Stat", mock.Anything, mock.Anything)
	h.opener.AssertExpectations(t)
}

func TestOpen_PickCancelled(t *testing.T) {
	h := newHarness()
	h.picker = fakePicker{}

	out, _, err := run(t, NewRootCommand(h.factory), "open")

	require.NoError(t, err)
	assert.Equal(t, "No file selected.\n", out)
	h.opener.AssertNotCalled(t, "Open", mock.Anything, mock.Anything)
}

func TestOpen_PickError(t *testing.T) {
	h := newHarness()
	h.picker = fakePicker{err: errors.New("file dialog: no display")}

	_, _, err := run(t, NewRootCommand(h.factory), "open")

	assert.EqualError(t, err, "file dialog: no display")
}

func TestOpen_NoArgWithoutPicker(t *testing.T) {
	_, _, err := run(t, NewRootCommand(newHarness().factory), "open")

	require.Error(t, err)
	assert.Equal(t, ExitUsage, ExitCode(err))
}

func TestOpen_TooManyArgs(t *testing.T) {
	_, _, err := run(t, NewRootCommand(newHarness().factory), "open", "a.pdf", "b.pdf")

	assert.Equal(t, ExitUsage, ExitCode(err))
}

func TestOpen_FactoryError(t *testing.T) {
	root := NewRootCommand(func(context.Context) (*Services, func() error, error) {
		return nil, nil, errors.New("no state directory")
	})
	_, _, err := run(t, root, "open", "s3://b/k.pdf")

	assert.EqualError(t, err, "no state directory")
}

func TestRecentList(t *testing.T) {
	h := newHarness()
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	yesterday := now.Add(-30 * time.Hour)
	h.recent.On("GetRecentFiles", mock.Anything).Return([]model.FileDescriptor{
		{URI: "file:///a.pdf", Name: "a.pdf", TypeName: "PDF Document", Size: 1536, OpenedAt: &now},
		{URI: "file:///b.csv", Name: "b.csv", TypeName: "CSV File", OpenedAt: &yesterday},
	}, nil)

	r := &runner{factory: h.factory, now: func() time.Time { return now }}
	cmd := newRecentCommand(r)

	out, _, err := run(t, cmd, "list")
	require.NoError(t, err)
	assert.Regexp(t, `a\.pdf\s+PDF Document\s+1\.5 KB\s+Today\s+file:///a\.pdf`, out)
	assert.Regexp(t, `b\.csv\s+CSV File\s+0 Bytes\s+Yesterday`, out)
}

func TestRecent_BareListsAsJSON(t *testing.T) {
	h := newHarness()
	h.recent.On("GetRecentFiles", mock.Anything).Return([]model.FileDescriptor{{URI: "file:///a.pdf", Name: "a.pdf"}}, nil)

	out, _, err := run(t, NewRootCommand(h.factory), "recent", "--json")
	require.NoError(t, err)

	var files []model.FileDescriptor
	require.NoError(t, json.Unmarshal([]byte(out), &files))
	require.Len(t, files, 1)
	assert.Equal(t, "file:///a.pdf", files[0].URI)
}

func TestRecentList_Empty(t *testing.T) {
	h := newHarness()
	h.recent.On("GetRecentFiles", mock.Anything).Return([]model.FileDescriptor{}, nil)

	out, _, err := run(t, NewRootCommand(h.factory), "recent", "list")
	require.NoError(t, err)
	assert.Equal(t, "No recent files.\n", out)
}

func TestRecentClear(t *testing.T) {
	h := newHarness()
	h.recent.On("ClearRecentFile", mock.Anything, "s3://b/a.pdf").Return([]model.FileDescriptor{}, nil).Once()

	out, _, err := run(t, NewRootCommand(h.factory), "recent", "clear", "s3://b/a.pdf")
	require.NoError(t, err)
	assert.Equal(t, "No recent files.\n", out)
	h.recent.AssertExpectations(t)
}

func TestRecentClear_MissingURI(t *testing.T) {
	_, _, err := run(t, NewRootCommand(newHarness().factory), "recent", "clear")
	assert.Equal(t, ExitUsage, ExitCode(err))
}

func TestRecentClearAll(t *testing.T) {
	h := newHarness()
	h.recent.On("ClearAllRecentFiles", mock.Anything).Return(nil).Once()

	out, _, err := run(t, NewRootCommand(h.factory), "recent", "clear-all")
	require.NoError(t, err)
	assert.Equal(t, "Recent files cleared.\n", out)
}

func TestRecentClearAll_Error(t *testing.T) {
	h := newHarness()
	h.recent.On("ClearAllRecentFiles", mock.Anything).Return(errors.New("remove recent files: boom"))

	_, _, err := run(t, NewRootCommand(h.factory), "recent", "clear-all")
	assert.EqualError(t, err, "remove recent files: boom")
	assert.Equal(t, ExitFailure, ExitCode(err))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, ExitCode(nil))
	assert.Equal(t, ExitUsage, ExitCode(newUsageError("bad")))
	assert.Equal(t, ExitUsage, ExitCode(errors.New(`unknown command "x" for "fileview"`)))
	assert.Equal(t, ExitUsage, ExitCode(errors.New("unknown flag: --nope")))
	assert.Equal(t, ExitFailure, ExitCode(fileerr.FileNotFound("file:///x", nil)))
}

func TestToURI(t *testing.T) {
	uri, err := toURI("s3://bucket/key.pdf")
	require.NoError(t, err)
	assert.Equal(t, "s3://bucket/key.pdf", uri)

	uri, err = toURI("/tmp/report.pdf")
	require.NoError(t, err)
	assert.Equal(t, "file:///tmp/report.pdf", uri)
}
