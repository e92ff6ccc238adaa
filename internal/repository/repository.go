package repository

import (
	"railres/internal/database"
)

type Repositories struct {
	Trains  *TrainRepository
	Users   *UserRepository
	Journal *JournalRepository
}

// NewRepositories builds the in-memory stores. db may be nil, in which case
// the booking journal is disabled.
func NewRepositories(db *database.DB) *Repositories {
	repos := &Repositories{
		Trains: NewTrainRepository(),
		Users:  NewUserRepository(),
	}
	if db != nil {
		repos.Journal = NewJournalRepository(db)
	}
	return repos
}
