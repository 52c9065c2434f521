package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/glowbook/salon-booking/internal/core/domain"
	"github.com/glowbook/salon-booking/internal/core/ports"
)

const collectionAppointments = "appointments"

type AppointmentRepository struct {
	col *mongo.Collection
}

func NewAppointmentRepository(db *mongo.Database) *AppointmentRepository {
	return &AppointmentRepository{col: db.Collection(collectionAppointments)}
}

type staffSummaryDoc struct {
	ID          string   `bson:"id"`
	Name        string   `bson:"name"`
	Email       string   `bson:"email,omitempty"`
	Phone       string   `bson:"phone,omitempty"`
	Specialties []string `bson:"specialties,omitempty"`
}

type serviceSummaryDoc struct {
	ID              string               `bson:"id"`
	Name            string               `bson:"name"`
	Description     string               `bson:"description,omitempty"`
	Price           primitive.Decimal128 `bson:"price"`
	DurationMinutes int                  `bson:"duration_minutes"`
}

type appointmentDoc struct {
	ID           string            `bson:"_id"`
	BusinessID   string            `bson:"business_id"`
	StaffID      string            `bson:"staff_id"`
	Staff        staffSummaryDoc   `bson:"staff"`
	ServiceID    string            `bson:"service_id"`
	Service      serviceSummaryDoc `bson:"service"`
	CustomerID   string            `bson:"customer_id"`
	CustomerName string            `bson:"customer_name"`
	StartTime    time.Time         `bson:"start_time"`
	EndTime      time.Time         `bson:"end_time"`
	Status       string            `bson:"status"`
	Notes        string            `bson:"notes,omitempty"`
	CreatedAt    time.Time         `bson:"created_at"`
	UpdatedAt    time.Time         `bson:"updated_at"`
	Version      int64             `bson:"version"`
}

func newAppointmentDoc(a *domain.Appointment) (appointmentDoc, error) {
	price, err := toDecimal128(a.Service.Price)
	if err != nil {
		return appointmentDoc{}, err
	}
	return appointmentDoc{
		ID:         a.ID,
		BusinessID: a.BusinessID,
		StaffID:    a.StaffID,
		Staff: staffSummaryDoc{
			ID:          a.Staff.ID,
			Name:        a.Staff.Name,
			Email:       a.Staff.Email,
			Phone:       a.Staff.Phone,
			Specialties: a.Staff.Specialties,
		},
		ServiceID: a.ServiceID,
		Service: serviceSummaryDoc{
			ID:              a.Service.ID,
			Name:            a.Service.Name,
			Description:     a.Service.Description,
			Price:           price,
			DurationMinutes: a.Service.DurationMinutes,
		},
		CustomerID:   a.CustomerID,
		CustomerName: a.CustomerName,
		StartTime:    a.StartTime.UTC(),
		EndTime:      a.EndTime.UTC(),
		Status:       string(a.Status),
		Notes:        a.Notes,
		CreatedAt:    a.CreatedAt.UTC(),
		UpdatedAt:    a.UpdatedAt.UTC(),
		Version:      a.Version,
	}, nil
}

func (d appointmentDoc) toDomain() domain.Appointment {
	return domain.Appointment{
		ID:      d.ID,
		StaffID: d.StaffID,
		Staff: domain.StaffSummary{
			ID:          d.Staff.ID,
			Name:        d.Staff.Name,
			Email:       d.Staff.Email,
			Phone:       d.Staff.Phone,
			Specialties: d.Staff.Specialties,
		},
		ServiceID: d.ServiceID,
		Service: domain.ServiceSummary{
			ID:              d.Service.ID,
			Name:            d.Service.Name,
			Description:     d.Service.Description,
			Price:           fromDecimal128(d.Service.Price),
			DurationMinutes: d.Service.DurationMinutes,
		},
		CustomerID:   d.CustomerID,
		CustomerName: d.CustomerName,
		StartTime:    d.StartTime.UTC(),
		EndTime:      d.EndTime.UTC(),
		Status:       domain.AppointmentStatus(d.Status),
		Notes:        d.Notes,
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
		BusinessID:   d.BusinessID,
		Version:      d.Version,
	}
}

// Create inserts a new appointment document.
func (r *AppointmentRepository) Create(ctx context.Context, a *domain.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc, err := newAppointmentDoc(a)
	if err != nil {
		return err
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert appointment: %w", err)
	}
	return nil
}

func (r *AppointmentRepository) FindByID(ctx context.Context, id, businessID string) (*domain.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc appointmentDoc
	err := r.col.FindOne(ctx, bson.M{"_id": id, "business_id": businessID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, err
	}
	a := doc.toDomain()
	return &a, nil
}

// List returns the matching appointments ordered by start time.
func (r *AppointmentRepository) List(ctx context.Context, f ports.AppointmentFilter) ([]domain.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, appointmentFilter(f), options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []appointmentDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]domain.Appointment, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// Replace overwrites the document only while its version still equals
// expectedVersion.
func (r *AppointmentRepository) Replace(ctx context.Context, a *domain.Appointment, expectedVersion int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc, err := newAppointmentDoc(a)
	if err != nil {
		return err
	}
	res, err := r.col.ReplaceOne(ctx, bson.M{
		"_id":         a.ID,
		"business_id": a.BusinessID,
		"version":     expectedVersion,
	}, doc)
	if err != nil {
		return fmt.Errorf("replace appointment: %w", err)
	}
	if res.MatchedCount == 0 {
		n, err := r.col.CountDocuments(ctx, bson.M{"_id": a.ID, "business_id": a.BusinessID})
		if err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrAppointmentNotFound
		}
		return domain.ErrVersionConflict
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the appointments collection.
func (r *AppointmentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "business_id", Value: 1}, {Key: "start_time", Value: 1}}},
		{Keys: bson.D{{Key: "business_id", Value: 1}, {Key: "customer_id", Value: 1}, {Key: "start_time", Value: 1}}},
		{Keys: bson.D{{Key: "business_id", Value: 1}, {Key: "staff_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func appointmentFilter(f ports.AppointmentFilter) bson.M {
	filter := bson.M{"business_id": f.BusinessID}
	if f.CustomerID != "" {
		filter["customer_id"] = f.CustomerID
	}
	if f.StaffID != "" {
		filter["staff_id"] = f.StaffID
	}
	if f.Status != "" {
		filter["status"] = string(f.Status)
	}
	if !f.From.IsZero() || !f.To.IsZero() {
		rng := bson.M{}
		if !f.From.IsZero() {
			rng["$gte"] = f.From.UTC()
		}
		if !f.To.IsZero() {
			rng["$lt"] = f.To.UTC()
		}
		filter["start_time"] = rng
	}
	return filter
}
