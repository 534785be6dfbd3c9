// Package scheduler menjalankan sweep reset status sekali sehari pada
// pukul 00:00 waktu server. Run yang terlewat (proses mati) tidak
// dikejar; instance ganda hanya mengulang sweep yang idempoten.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/teambition/rrule-go"
)

// Sweeper adalah satu-satunya hal yang perlu diketahui scheduler tentang
// inti aplikasi.
type Sweeper interface {
	ResetAllStatuses(ctx context.Context) error
}

type DailyReset struct {
	sweeper Sweeper
	logger  *logrus.Logger
	loc     *time.Location
	rule    *rrule.RRule
	stop    chan struct{}
	done    chan struct{}
}

func NewDailyReset(sweeper Sweeper, loc *time.Location, logger *logrus.Logger) (*DailyReset, error) {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = logrus.New()
	}

	now := time.Now().In(loc)
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:    rrule.DAILY,
		Dtstart: midnight,
	})
	if err != nil {
		return nil, fmt.Errorf("gagal membuat aturan recurrence harian: %w", err)
	}

	return &DailyReset{
		sweeper: sweeper,
		logger:  logger,
		loc:     loc,
		rule:    rule,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}, nil
}

func (d *DailyReset) Start() {
	go d.loop()
	d.logger.Info("Daily reset scheduler aktif, dijadwalkan setiap 00:00")
}

func (d *DailyReset) Stop() {
	close(d.stop)
	<-d.done
}

func (d *DailyReset) loop() {
	defer close(d.done)
	for {
		next := d.rule.After(time.Now().In(d.loc), false)
		timer := time.NewTimer(time.Until(next))

		select {
		case <-d.stop:
			timer.Stop()
			return
		case <-timer.C:
			d.runSweep()
		}
	}
}

// runSweep tidak boleh pernah mematikan proses: error dicatat lalu
// ditelan, panic ditangkap, dan jadwal berikutnya tetap berjalan.
func (d *DailyReset) runSweep() {
	defer func() {
		if r := recover(); r != nil {
			d.logger.WithField("panic", r).Error("Panic saat daily reset sweep")
		}
	}()

	d.logger.Info("Menjalankan daily status reset...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := d.sweeper.ResetAllStatuses(ctx); err != nil {
		d.logger.WithError(err).Error("Daily status reset gagal")
		return
	}
	d.logger.Info("Daily status reset berhasil")
}
