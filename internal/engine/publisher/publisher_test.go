package publisher_test

import (
	"context"
	"strings"
	"testing"

	"github.com/cnwangjie/arch-backup/internal/adapters/telemetry"
	"github.com/cnwangjie/arch-backup/internal/core/domain"
	"github.com/cnwangjie/arch-backup/internal/core/ports/mocks"
	"github.com/cnwangjie/arch-backup/internal/engine/publisher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

var artifacts = []domain.Artifact{
	{Name: "grouplist", Lines: []string{"base"}},
	{Name: "pkglist", Lines: []string{"yay", "vim"}},
}

func TestPublish_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockArtifactStore(ctrl)
	differ := mocks.NewMockDiffStater(ctrl)
	log := mocks.NewMockLogger(ctrl)

	store.EXPECT().Write(artifacts[0]).Return(domain.WriteResult{Path: "/b/grouplist", Changed: false}, nil)
	store.EXPECT().Write(artifacts[1]).Return(domain.WriteResult{Path: "/b/pkglist", Changed: true}, nil)
	differ.EXPECT().DiffStat(gomock.Any(), "grouplist").Return(domain.DiffStat{}, nil)
	differ.EXPECT().DiffStat(gomock.Any(), "pkglist").Return(domain.DiffStat{Added: 3, Removed: 1}, nil)
	log.EXPECT().Debug(gomock.Any()).Times(2)

	p := publisher.New(store, differ, telemetry.NewNoOpTracer(), log)
	reports := p.Publish(context.Background(), artifacts)

	require.Len(t, reports, 2)
	assert.Equal(t, "grouplist", reports[0].Artifact.Name)
	assert.False(t, reports[0].Result.Changed)
	assert.Equal(t, "pkglist", reports[1].Artifact.Name)
	assert.Equal(t, domain.DiffStat{Added: 3, Removed: 1}, reports[1].Diff)
	for _, r := range reports {
		assert.True(t, r.DiffAvailable())
	}
}

func TestPublish_DiffFailureIsIsolated(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockArtifactStore(ctrl)
	differ := mocks.NewMockDiffStater(ctrl)
	log := mocks.NewMockLogger(ctrl)

	diffErr := zerr.With(zerr.Wrap(domain.ErrDiffUnavailable, "cannot diff grouplist"), "file", "grouplist")

	store.EXPECT().Write(gomock.Any()).Return(domain.WriteResult{Changed: true}, nil).Times(2)
	differ.EXPECT().DiffStat(gomock.Any(), "grouplist").Return(domain.DiffStat{}, diffErr)
	differ.EXPECT().DiffStat(gomock.Any(), "pkglist").Return(domain.DiffStat{Added: 2}, nil)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Cond(func(msg string) bool {
		return strings.HasPrefix(msg, "grouplist: ")
	}))

	reports := publisher.New(store, differ, telemetry.NewNoOpTracer(), log).
		Publish(context.Background(), artifacts)

	require.Len(t, reports, 2)
	assert.ErrorIs(t, reports[0].DiffErr, domain.ErrDiffUnavailable)
	assert.False(t, reports[0].Failed())
	assert.False(t, reports[0].DiffAvailable())
	assert.Equal(t, domain.DiffStat{}, reports[0].Diff)

	assert.True(t, reports[1].DiffAvailable())
	assert.Equal(t, 2, reports[1].Diff.Added)

	s := &domain.Summary{Reports: reports}
	assert.NoError(t, s.Err())
}

func TestPublish_WriteFailureSkipsDiff(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockArtifactStore(ctrl)
	differ := mocks.NewMockDiffStater(ctrl)
	log := mocks.NewMockLogger(ctrl)

	writeErr := zerr.Wrap(domain.ErrArtifactWriteFailed, "permission denied")

	store.EXPECT().Write(artifacts[0]).Return(domain.WriteResult{}, writeErr)
	store.EXPECT().Write(artifacts[1]).Return(domain.WriteResult{Changed: true}, nil)
	differ.EXPECT().DiffStat(gomock.Any(), "pkglist").Return(domain.DiffStat{Removed: 4}, nil)
	log.EXPECT().Debug(gomock.Any())

	reports := publisher.New(store, differ, telemetry.NewNoOpTracer(), log).
		Publish(context.Background(), artifacts)

	require.Len(t, reports, 2)
	assert.True(t, reports[0].Failed())
	assert.ErrorIs(t, reports[0].WriteErr, domain.ErrArtifactWriteFailed)
	assert.Equal(t, 4, reports[1].Diff.Removed)

	err := (&domain.Summary{Reports: reports}).Err()
	assert.ErrorIs(t, err, domain.ErrArtifactsFailed)
	assert.ErrorIs(t, err, domain.ErrArtifactWriteFailed)
}

func TestPublish_NoArtifacts(t *testing.T) {
	ctrl := gomock.NewController(t)
	p := publisher.New(mocks.NewMockArtifactStore(ctrl), mocks.NewMockDiffStater(ctrl),
		telemetry.NewNoOpTracer(), mocks.NewMockLogger(ctrl))

	assert.Empty(t, p.Publish(context.Background(), nil))
}

func TestPublish_RecordsSpans(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockArtifactStore(ctrl)
	differ := mocks.NewMockDiffStater(ctrl)
	tracer := mocks.NewMockTracer(ctrl)
	root := mocks.NewMockSpan(ctrl)
	span := mocks.NewMockSpan(ctrl)
	log := mocks.NewMockLogger(ctrl)

	writeErr := zerr.Wrap(domain.ErrArtifactWriteFailed, "disk full")
	a := domain.Artifact{Name: "pkglist"}

	ctx := context.Background()
	tracer.EXPECT().Start(ctx, "publish").Return(ctx, root)
	tracer.EXPECT().Start(ctx, "publish artifact").Return(ctx, span)
	store.EXPECT().Write(a).Return(domain.WriteResult{}, writeErr)

	span.EXPECT().SetAttribute("file", "pkglist")
	span.EXPECT().RecordError(writeErr)
	span.EXPECT().End()
	root.EXPECT().End()

	reports := publisher.New(store, differ, tracer, log).Publish(ctx, []domain.Artifact{a})
	require.Len(t, reports, 1)
	assert.True(t, reports[0].Failed())
}
