package ledger

import (
	"github.com/stretchr/testify/mock"

	"github.com/eigerco/rngdao/internal/common"
	"github.com/eigerco/rngdao/pkg/db"
)

func NewLedgerMock() *LedgerMock {
	return &LedgerMock{}
}

type LedgerMock struct {
	mock.Mock
}

func (l *LedgerMock) Transfer(rw db.ReadWriter, from, to common.AccountID, amount common.Balance, keepAlive bool) error {
	args := l.MethodCalled("Transfer", rw, from, to, amount, keepAlive)
	return args.Error(0)
}

func (l *LedgerMock) Balance(r db.Reader, who common.AccountID) (common.Balance, error) {
	args := l.MethodCalled("Balance", r, who)
	return args.Get(0).(common.Balance), args.Error(1)
}
