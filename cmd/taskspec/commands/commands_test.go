package commands_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/taskspec/cmd/taskspec/commands"
	"go.trai.ch/taskspec/internal/app"
	"go.trai.ch/taskspec/internal/build"
	"go.trai.ch/taskspec/internal/core/domain"
	"go.trai.ch/taskspec/internal/core/ports/mocks"
	"go.trai.ch/taskspec/internal/engine/submitter"
	"go.uber.org/mock/gomock"
)

type setup struct {
	loader *mocks.MockManifestLoader
	table  *mocks.MockTaskTable
	pub    *mocks.MockPublisher
	out    *bytes.Buffer
	cli    *commands.CLI
}

func newSetup(t *testing.T) *setup {
	t.Helper()
	ctrl := gomock.NewController(t)

	s := &setup{
		loader: mocks.NewMockManifestLoader(ctrl),
		table:  mocks.NewMockTaskTable(ctrl),
		pub:    mocks.NewMockPublisher(ctrl),
		out:    &bytes.Buffer{},
	}
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()

	a := app.New(s.loader, s.table, submitter.New(s.table, s.pub, log, 1)).WithOutput(s.out)
	s.cli = commands.New(a)
	s.cli.SetOutput(s.out)
	return s
}

func oneTask() *domain.Manifest {
	return &domain.Manifest{Tasks: []domain.TaskDef{{Name: "only", Function: "noop"}}}
}

func TestSubmit_Success(t *testing.T) {
	s := newSetup(t)
	outDir := t.TempDir()

	s.loader.EXPECT().Load("tasks.yaml").Return(oneTask(), nil).Times(1)
	s.table.EXPECT().FindByTask(gomock.Any(), gomock.Any()).Return(nil, nil).Times(1)
	s.table.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	s.pub.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	s.cli.SetArgs([]string{"submit", "tasks.yaml", "--out", outDir})
	require.NoError(t, s.cli.Execute(context.Background()))

	assert.Contains(t, s.out.String(), "only\ttask=")
	assert.FileExists(t, filepath.Join(outDir, "only.task"))
}

func TestSubmit_RequiresManifest(t *testing.T) {
	s := newSetup(t)
	s.cli.SetArgs([]string{"submit"})
	assert.Error(t, s.cli.Execute(context.Background()))
}

func TestInspect(t *testing.T) {
	s := newSetup(t)
	specs, err := submitter.Build(oneTask())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "only.task")
	require.NoError(t, os.WriteFile(path, specs[0].Bytes(), 0o600))

	s.cli.SetArgs([]string{"inspect", path})
	require.NoError(t, s.cli.Execute(context.Background()))
	assert.Contains(t, s.out.String(), "verified: yes")
}

func TestShow(t *testing.T) {
	s := newSetup(t)
	specs, err := submitter.Build(oneTask())
	require.NoError(t, err)
	in := domain.NewInstance(domain.NewInstanceID(), specs[0], domain.Waiting, domain.NodeID{})

	s.table.EXPECT().Get(gomock.Any(), in.ID()).Return(in, nil)

	s.cli.SetArgs([]string{"show", in.ID().String()})
	require.NoError(t, s.cli.Execute(context.Background()))
	assert.Contains(t, s.out.String(), "instance "+in.ID().String())
}

func TestUpdate(t *testing.T) {
	s := newSetup(t)
	id := domain.NewInstanceID()

	s.table.EXPECT().ApplyUpdate(gomock.Any(), id, domain.NewUpdate(domain.Scheduled, domain.NodeID{})).Return(nil)

	s.cli.SetArgs([]string{"update", id.String(), "--state", "scheduled"})
	require.NoError(t, s.cli.Execute(context.Background()))
}

func TestUpdate_RequiresState(t *testing.T) {
	s := newSetup(t)
	s.cli.SetArgs([]string{"update", domain.NewInstanceID().String()})

	err := s.cli.Execute(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "state")
}

func TestVersion(t *testing.T) {
	s := newSetup(t)
	s.cli.SetArgs([]string{"version"})

	require.NoError(t, s.cli.Execute(context.Background()))
	assert.Equal(t, "taskspec version "+build.Version+"\n", s.out.String())
}
