package collector_test

import (
	"context"
	"testing"

	"github.com/cnwangjie/arch-backup/internal/adapters/telemetry"
	"github.com/cnwangjie/arch-backup/internal/core/domain"
	"github.com/cnwangjie/arch-backup/internal/core/ports/mocks"
	"github.com/cnwangjie/arch-backup/internal/engine/collector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func baseMembership() *domain.Membership {
	m := domain.NewMembership()
	m.Add("base", "base")
	m.Add("base", "bash")
	return m
}

func TestCollect_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	querier := mocks.NewMockPackageQuerier(ctrl)
	log := mocks.NewMockLogger(ctrl)

	querier.EXPECT().QueryGroups(gomock.Any()).Return(baseMembership(), 0, nil)
	querier.EXPECT().QueryExplicit(gomock.Any(), domain.ProvenanceAUR).Return([]string{"yay"}, 0, nil)
	querier.EXPECT().QueryExplicit(gomock.Any(), domain.ProvenanceRepo).Return([]string{"bash", "vim"}, 0, nil)
	log.EXPECT().Debug(gomock.Any()).Times(2)

	c := collector.New(querier, telemetry.NewNoOpTracer(), log)
	inv, err := c.Collect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"base"}, inv.Groups())
	assert.Equal(t, []string{"yay"}, inv.ExplicitAUR)
	assert.Equal(t, []string{"bash", "vim"}, inv.ExplicitRepo)
	assert.Zero(t, inv.Skipped)

	snap := domain.Reconcile(inv)
	assert.Equal(t, []string{"yay", "vim"}, snap.UngroupedExplicit)
}

func TestCollect_SumsSkippedRecords(t *testing.T) {
	ctrl := gomock.NewController(t)
	querier := mocks.NewMockPackageQuerier(ctrl)
	log := mocks.NewMockLogger(ctrl)

	querier.EXPECT().QueryGroups(gomock.Any()).Return(domain.NewMembership(), 2, nil)
	querier.EXPECT().QueryExplicit(gomock.Any(), domain.ProvenanceAUR).Return(nil, 0, nil)
	querier.EXPECT().QueryExplicit(gomock.Any(), domain.ProvenanceRepo).Return([]string{"vim"}, 1, nil)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	log.EXPECT().Warn("skipped 3 malformed records")

	inv, err := collector.New(querier, telemetry.NewNoOpTracer(), log).Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, inv.Skipped)
}

func TestCollect_FailFast(t *testing.T) {
	ctrl := gomock.NewController(t)
	querier := mocks.NewMockPackageQuerier(ctrl)
	log := mocks.NewMockLogger(ctrl)

	queryErr := zerr.With(zerr.Wrap(domain.ErrCommandFailed, "pacman failed"), "command", "pacman -Qge")
	querier.EXPECT().QueryGroups(gomock.Any()).Return(nil, 0, queryErr)

	// The explicit queries block until the failing group query cancels them.
	querier.EXPECT().QueryExplicit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ domain.Provenance) ([]string, int, error) {
			<-ctx.Done()
			return nil, 0, ctx.Err()
		}).Times(2)

	inv, err := collector.New(querier, telemetry.NewNoOpTracer(), log).Collect(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCommandFailed)
	assert.NotErrorIs(t, err, context.Canceled)
	assert.Nil(t, inv.Membership, "no partial inventory")
}

func TestCollect_ParseErrorAborts(t *testing.T) {
	ctrl := gomock.NewController(t)
	querier := mocks.NewMockPackageQuerier(ctrl)
	log := mocks.NewMockLogger(ctrl)

	querier.EXPECT().QueryGroups(gomock.Any()).Return(baseMembership(), 0, nil).AnyTimes()
	querier.EXPECT().QueryExplicit(gomock.Any(), domain.ProvenanceAUR).
		Return(nil, 0, zerr.Wrap(domain.ErrMissingNameField, "block 2")).AnyTimes()
	querier.EXPECT().QueryExplicit(gomock.Any(), domain.ProvenanceRepo).Return([]string{"vim"}, 0, nil).AnyTimes()
	log.EXPECT().Debug(gomock.Any()).AnyTimes()

	_, err := collector.New(querier, telemetry.NewNoOpTracer(), log).Collect(context.Background())
	assert.ErrorIs(t, err, domain.ErrParse)
}

func TestCollect_Spans(t *testing.T) {
	ctrl := gomock.NewController(t)
	querier := mocks.NewMockPackageQuerier(ctrl)
	log := mocks.NewMockLogger(ctrl)

	querier.EXPECT().QueryGroups(gomock.Any()).Return(baseMembership(), 0, nil)
	querier.EXPECT().QueryExplicit(gomock.Any(), gomock.Any()).Return([]string{"vim"}, 0, nil).Times(2)
	log.EXPECT().Debug(gomock.Any()).Times(2)

	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	tracer := telemetry.NewOTelTracerWithProvider(tp, "test")

	_, err := collector.New(querier, tracer, log).Collect(context.Background())
	require.NoError(t, err)

	spans := rec.Ended()
	require.Len(t, spans, 4)

	names := make(map[string]int)
	var root sdktrace.ReadOnlySpan
	for _, s := range spans {
		names[s.Name()]++
		if s.Name() == "collect" {
			root = s
		}
	}
	assert.Equal(t, map[string]int{"collect": 1, "query groups": 1, "query explicit": 2}, names)
	require.NotNil(t, root)
	for _, s := range spans {
		if s.Name() != "collect" {
			assert.Equal(t, root.SpanContext().SpanID(), s.Parent().SpanID())
		}
	}
}
