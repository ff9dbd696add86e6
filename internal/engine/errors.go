package engine

import "errors"

var (
	ErrBountyTooLow                 = errors.New("bounty too low")
	ErrCycleNotFound                = errors.New("cycle not found")
	ErrMaxGeneratorsReached         = errors.New("max generators reached")
	ErrBotsNotAllowedYet            = errors.New("bots not allowed yet")
	ErrSecondPhaseNotStartedYet     = errors.New("second phase not started yet")
	ErrNotSubmittedHashInFirstPhase = errors.New("no hash submitted in first phase")
	ErrSecretDoesNotMatchHash       = errors.New("secret does not match hash")
	ErrNotAuthorizedToFinalize      = errors.New("not authorized to finalize")
	ErrTooEarlyToFinalize           = errors.New("too early to finalize")
	ErrArithmeticOverflow           = errors.New("arithmetic overflow")
	ErrArithmeticUnderflow          = errors.New("arithmetic underflow")
	ErrAlreadyCommitted             = errors.New("hash already committed")
	ErrCommitPhaseEnded             = errors.New("commit phase ended")
	ErrCycleAlreadyFinalized        = errors.New("cycle already finalized")
	ErrCycleNotFinalized            = errors.New("cycle not finalized")
	ErrNotAuthorizedToSweep         = errors.New("not authorized to sweep")
	ErrNothingToSweep               = errors.New("nothing to sweep")
	ErrRandomNumberNotYetGenerated  = errors.New("random number not yet generated")
)

// rejectReasons bounds the label values used for rejected operations.
// ErrRandomNumberNotYetGenerated is read-side only and never rejects an
// operation.
var rejectReasons = []error{
	ErrBountyTooLow,
	ErrCycleNotFound,
	ErrMaxGeneratorsReached,
	ErrBotsNotAllowedYet,
	ErrSecondPhaseNotStartedYet,
	ErrNotSubmittedHashInFirstPhase,
	ErrSecretDoesNotMatchHash,
	ErrNotAuthorizedToFinalize,
	ErrTooEarlyToFinalize,
	ErrArithmeticOverflow,
	ErrArithmeticUnderflow,
	ErrAlreadyCommitted,
	ErrCommitPhaseEnded,
	ErrCycleAlreadyFinalized,
	ErrCycleNotFinalized,
	ErrNotAuthorizedToSweep,
	ErrNothingToSweep,
}

func rejectReason(err error) string {
	for _, reason := range rejectReasons {
		if errors.Is(err, reason) {
			return reason.Error()
		}
	}
	return "other"
}
