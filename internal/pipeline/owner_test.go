package pipeline

import (
	"testing"

	"lunchradar/pkg/domain"
	"lunchradar/pkg/serrors"

	"github.com/stretchr/testify/require"
)

func ownerSnapshot(o *stateOwner) (Status, []domain.Place) {
	var (
		status  Status
		results []domain.Place
	)
	o.call(func(s *ownerState) {
		status = s.status
		results = s.results
	})

	return status, results
}

// Generation claims and mailbox delivery are separate steps, so the newer
// run's begin can be delivered before an older run's. The late begin must not
// re-activate the superseded run, or its settle would overwrite the newer one.
func TestOwner_LateBeginCannotReactivateSupersededRun(t *testing.T) {
	o := newStateOwner(8)
	defer o.close()

	o.call(func(s *ownerState) { s.beginRun(2) })
	o.call(func(s *ownerState) { s.beginRun(1) })

	fresh := []domain.Place{{ID: "p-new", Name: "Fresh Falafel"}}
	var freshApplied, staleApplied bool
	o.call(func(s *ownerState) {
		freshApplied = s.settle(2, fresh, false, "")
	})
	o.call(func(s *ownerState) {
		staleApplied = s.settle(1, []domain.Place{{ID: "p-old"}}, true, serrors.ErrNetwork.Error())
	})

	require.True(t, freshApplied)
	require.False(t, staleApplied)

	status, results := ownerSnapshot(o)
	require.Equal(t, Status{Kind: StatusSuccess, Count: 1}, status)
	require.Equal(t, fresh, results)
}

// A run can claim its generation just before a cancel claims the next one. If
// the cancel's reset lands first, the run's late begin must be ignored so the
// pipeline stays idle and the run cannot settle.
func TestOwner_BeginClaimedBeforeCancelStaysIdle(t *testing.T) {
	o := newStateOwner(8)
	defer o.close()

	o.call(func(s *ownerState) { s.reset(2) })
	o.call(func(s *ownerState) { s.beginRun(1) })

	status, _ := ownerSnapshot(o)
	require.Equal(t, StatusIdle, status.Kind)

	var applied bool
	o.call(func(s *ownerState) {
		applied = s.settle(1, []domain.Place{{ID: "p1"}}, true, serrors.ErrNetwork.Error())
	})
	require.False(t, applied)

	status, _ = ownerSnapshot(o)
	require.Equal(t, StatusIdle, status.Kind)
}

func TestOwner_BeginsStayMonotonicAcrossSettles(t *testing.T) {
	o := newStateOwner(8)
	defer o.close()

	o.call(func(s *ownerState) { s.beginRun(1) })
	var applied bool
	o.call(func(s *ownerState) {
		applied = s.settle(1, []domain.Place{{ID: "p1"}}, false, "")
	})
	require.True(t, applied)

	// a later run begins and settles normally
	o.call(func(s *ownerState) { s.beginRun(2) })
	o.call(func(s *ownerState) {
		applied = s.settle(2, []domain.Place{{ID: "p2"}}, false, "")
	})
	require.True(t, applied)

	status, results := ownerSnapshot(o)
	require.Equal(t, Status{Kind: StatusSuccess, Count: 1}, status)
	require.Equal(t, []domain.Place{{ID: "p2"}}, results)
}
