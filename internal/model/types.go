package model

type Level string

const (
	LevelSilver    Level = "SILVER"
	LevelPlutonium Level = "PLUTONIUM"
	LevelGolden    Level = "GOLDEN"
	LevelSuperMan  Level = "SUPER_MAN"
)

func (l Level) String() string {
	return string(l)
}

type AccountStatus string

const (
	StatusActive AccountStatus = "ACTIVE"
	StatusBanned AccountStatus = "BANNED"
)

func ParseAccountStatus(s string) (AccountStatus, error) {
	switch s {
	case string(StatusActive):
		return StatusActive, nil
	case string(StatusBanned):
		return StatusBanned, nil
	default:
		return "", ErrInvalidStatus
	}
}

func (s AccountStatus) String() string {
	return string(s)
}

type TransactionType string

const (
	TxDeposit       TransactionType = "DEPOSIT"
	TxWithdrawal    TransactionType = "WITHDRAWAL"
	TxGameEntry     TransactionType = "GAME_ENTRY"
	TxGameWin       TransactionType = "GAME_WIN"
	TxReferralBonus TransactionType = "REFERRAL_BONUS"
	TxRefund        TransactionType = "REFUND"
)

func (t TransactionType) String() string {
	return string(t)
}

type TransactionStatus string

const (
	TxStatusPending TransactionStatus = "PENDING"
	TxStatusSuccess TransactionStatus = "SUCCESS"
	TxStatusFailed  TransactionStatus = "FAILED"
)

type MatchMode string

const (
	Mode2P MatchMode = "2P"
	Mode4P MatchMode = "4P"
)

// Seats returns the number of participants the mode requires, or 0 for an unknown mode.
func (m MatchMode) Seats() int {
	switch m {
	case Mode2P:
		return 2
	case Mode4P:
		return 4
	default:
		return 0
	}
}

func ParseMatchMode(s string) (MatchMode, error) {
	switch s {
	case string(Mode2P):
		return Mode2P, nil
	case string(Mode4P):
		return Mode4P, nil
	default:
		return "", ErrInvalidMatchComposition
	}
}

func (m MatchMode) String() string {
	return string(m)
}

type MatchStatus string

const (
	MatchWaiting   MatchStatus = "WAITING"
	MatchPlaying   MatchStatus = "PLAYING"
	MatchCompleted MatchStatus = "COMPLETED"
)
