package model

import "errors"

var (
	ErrAccountNotFound         = errors.New("account not found")
	ErrInsufficientBalance     = errors.New("insufficient balance")
	ErrInvalidMatchComposition = errors.New("invalid match composition")
	ErrMatchAlreadySettled     = errors.New("match already settled")
	ErrMatchNotFound           = errors.New("match not found")
	ErrInvalidWinner           = errors.New("winner is not a match participant")
	ErrInvalidAmount           = errors.New("invalid amount")
	ErrBelowMinimum            = errors.New("amount below minimum")
	ErrInvalidPhone            = errors.New("invalid phone number")
	ErrInvalidCredentials      = errors.New("invalid admin credentials")
	ErrMatchmakingInProgress   = errors.New("matchmaking already in progress")
	ErrAccountBanned           = errors.New("account banned")
	ErrInvalidStatus           = errors.New("invalid account status")
	ErrDuplicateTransaction    = errors.New("duplicate transaction")
	ErrDuplicateAccount        = errors.New("duplicate account")
)
