package lifecycle_test

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/reporthub/reporthub-api/databases/mocks"
	"github.com/reporthub/reporthub-api/lifecycle"
)

var (
	fixedNow  = time.Date(2024, 3, 14, 9, 26, 53, 0, time.UTC)
	fixedDT   = primitive.NewDateTimeFromTime(fixedNow)
	reportOID = primitive.NewObjectID()
	reportID  = reportOID.Hex()
	ctx       = context.Background()
)

type stores struct {
	reports  *mocks.ReportDatabase
	citizens *mocks.CitizenDatabase
	staff    *mocks.StaffDatabase
}

func newEngine() (*lifecycle.Engine, stores) {
	s := stores{
		reports:  &mocks.ReportDatabase{},
		citizens: &mocks.CitizenDatabase{},
		staff:    &mocks.StaffDatabase{},
	}
	e := lifecycle.New(s.reports, s.citizens, s.staff)
	e.Now = func() time.Time { return fixedNow }
	return e, s
}
