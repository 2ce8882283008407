package stream

import (
	"fmt"

	weave "github.com/iov-one/vesting"
	"github.com/iov-one/vesting/errors"
)

const maxUint64 = ^uint64(0)

// ElapsedBlocks returns the number of blocks of the window that have passed
// at the given height. The result never exceeds the window length.
func ElapsedBlocks(tf Timeframe, current uint64) uint64 {
	switch {
	case current <= tf.StartBlock:
		return 0
	case current < tf.StopBlock:
		return current - tf.StartBlock
	default:
		return tf.StopBlock - tf.StartBlock
	}
}

// Entitlement returns the amount the given party may claim from the stream
// at the given height. The recipient may claim what has vested and was not
// yet withdrawn, the sender may claim what has not vested. Any other party
// gets nothing.
//
// A stream that would underflow is corrupted. Entitlement panics in that
// case instead of returning an error.
func Entitlement(s *Stream, party weave.Address, current uint64) uint64 {
	vested, err := vestedAmount(s.PaymentPerBlock, s.GetTimeframe(), current)
	if err != nil {
		panic(corrupted(err.Error()))
	}
	switch {
	case party.Equals(s.Recipient):
		if vested < s.WithdrawnBalance {
			panic(corrupted(fmt.Sprintf("vested %d below withdrawn %d", vested, s.WithdrawnBalance)))
		}
		return vested - s.WithdrawnBalance
	case party.Equals(s.Sender):
		if vested > s.Balance {
			panic(corrupted(fmt.Sprintf("vested %d above balance %d", vested, s.Balance)))
		}
		return s.Balance - vested
	default:
		return 0
	}
}

func corrupted(msg string) error {
	return errors.Wrapf(errors.ErrHuman, "corrupted stream: %s", msg)
}

// vestedAmount returns the total amount vested at the given height.
func vestedAmount(ppb uint64, tf Timeframe, current uint64) (uint64, error) {
	return mulUint64(ElapsedBlocks(tf, current), ppb)
}

// scheduleTotal returns the amount the whole window vests.
func scheduleTotal(ppb uint64, tf Timeframe) (uint64, error) {
	return mulUint64(tf.StopBlock-tf.StartBlock, ppb)
}

func mulUint64(a, b uint64) (uint64, error) {
	if a != 0 && b > maxUint64/a {
		return 0, errors.Wrapf(errors.ErrOverflow, "%d * %d", a, b)
	}
	return a * b, nil
}

func addUint64(a, b uint64) (uint64, error) {
	if a > maxUint64-b {
		return 0, errors.Wrapf(errors.ErrOverflow, "%d + %d", a, b)
	}
	return a + b, nil
}

// checkFunded ensures the balance covers the whole schedule, so that the
// sender entitlement can never go below zero.
func checkFunded(balance, ppb uint64, tf Timeframe) error {
	total, err := scheduleTotal(ppb, tf)
	if err != nil {
		return err
	}
	if total > balance {
		return errors.Wrapf(errors.ErrInsufficientAmount, "schedule requires %d, balance is %d", total, balance)
	}
	return nil
}
