package apitest

import (
	"sync"

	"github.com/shopspring/decimal"
)

type user struct {
	Email    string
	Password string
	Name     string
	Role     string
	PIN      string
}

type customer struct {
	ID        int64
	Name      string
	Email     string
	TaxNumber string
}

type equipment struct {
	ID       int64
	Name     string
	Type     string
	Template map[string]any
}

type offerItem struct {
	EquipmentID int64
	Quantity    int64
	UnitPrice   decimal.Decimal
}

type offer struct {
	ID            int64
	CustomerID    int64
	Items         []offerItem
	Notes         string
	Status        string
	TrackingToken string
	Accepted      bool
}

func (o *offer) total() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range o.Items {
		sum = sum.Add(it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity)))
	}
	return sum
}

type workOrder struct {
	ID      int64
	OfferID int64
	Status  string
}

type inspection struct {
	ID          int64
	WorkOrderID int64
	Status      string
	Data        map[string]any
	Photos      []string
	ReportID    int64
}

type reportRecord struct {
	ID           int64
	InspectionID int64
	Prepared     bool
	Malformed    bool
	SignedBy     string
	IsSigned     bool
	QRToken      string
}

type job struct {
	ID       string
	ReportID int64
	Polls    int
}

// store is the in-memory state behind the fake backend. The harness is
// single-threaded but the mutex keeps the server safe for parallel
// tests.
type store struct {
	mu sync.Mutex

	seq         int64
	users       map[string]*user
	customers   map[int64]*customer
	equipment   map[int64]*equipment
	offers      map[int64]*offer
	workOrders  map[int64]*workOrder
	inspections map[int64]*inspection
	reports     map[int64]*reportRecord
	jobs        map[string]*job

	// call counters for assertions
	enqueueCalls     int
	jobPollCalls     int
	prepareSyncCalls int
}

func newStore() *store {
	s := &store{
		users:       map[string]*user{},
		customers:   map[int64]*customer{},
		equipment:   map[int64]*equipment{},
		offers:      map[int64]*offer{},
		workOrders:  map[int64]*workOrder{},
		inspections: map[int64]*inspection{},
		reports:     map[int64]*reportRecord{},
		jobs:        map[string]*job{},
	}
	s.users["admin@abc.com"] = &user{
		Email: "admin@abc.com", Password: "password", Name: "Admin", Role: "admin",
	}
	s.users["ahmet@abc.com"] = &user{
		Email: "ahmet@abc.com", Password: "password", Name: "Ahmet", Role: "technician", PIN: "123456",
	}
	return s
}

func (s *store) nextID() int64 {
	s.seq++
	return s.seq
}
