package maintenance

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Sweeper removes rows whose auth identity is gone: notes and profiles left
// behind by deletions performed before the cascade became transactional.
type Sweeper struct {
	db *sql.DB
}

func NewSweeper(db *sql.DB) *Sweeper {
	return &Sweeper{db: db}
}

// Start schedules the nightly sweep (12:00 AM).
func (s *Sweeper) Start() {
	c := cron.New(cron.WithSeconds())

	_, err := c.AddFunc("0 0 0 * * *", func() {
		if err := s.SweepOrphans(context.Background()); err != nil {
			log.Printf("Orphan sweep failed: %v", err)
		}
	})

	if err != nil {
		log.Printf("Failed to create cron job: %v", err)
		return
	}

	log.Println("Orphan sweeper started (running nightly at 12:00AM)")
	c.Start()
}

// SweepOrphans deletes notes and profiles without a matching auth user.
func (s *Sweeper) SweepOrphans(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 1*time.Minute)
	defer cancel()

	notesResult, err := s.db.ExecContext(ctx, `
		DELETE FROM notes
		WHERE user_id NOT IN (SELECT id FROM auth_users)
	`)
	if err != nil {
		return err
	}

	profilesResult, err := s.db.ExecContext(ctx, `
		DELETE FROM profiles
		WHERE id NOT IN (SELECT id FROM auth_users)
	`)
	if err != nil {
		return err
	}

	notesSwept, _ := notesResult.RowsAffected()
	profilesSwept, _ := profilesResult.RowsAffected()
	log.Printf("Orphan sweep completed: %d notes, %d profiles removed", notesSwept, profilesSwept)

	return nil
}
