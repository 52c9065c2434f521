package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/glowbook/salon-booking/internal/core/domain"
)

const (
	collectionServices = "services"
	collectionStaff    = "staff"
)

type ServiceRepository struct {
	col *mongo.Collection
}

func NewServiceRepository(db *mongo.Database) *ServiceRepository {
	return &ServiceRepository{col: db.Collection(collectionServices)}
}

type serviceDoc struct {
	ID              string               `bson:"_id"`
	BusinessID      string               `bson:"business_id"`
	Name            string               `bson:"name"`
	Description     string               `bson:"description"`
	Price           primitive.Decimal128 `bson:"price"`
	DurationMinutes int                  `bson:"duration_minutes"`
	ImageURL        string               `bson:"image_url,omitempty"`
	Active          bool                 `bson:"active"`
}

func (d serviceDoc) toDomain() domain.Service {
	return domain.Service{
		ID:              d.ID,
		Name:            d.Name,
		Description:     d.Description,
		Price:           fromDecimal128(d.Price),
		DurationMinutes: d.DurationMinutes,
		ImageURL:        d.ImageURL,
		Active:          d.Active,
		BusinessID:      d.BusinessID,
	}
}

func (r *ServiceRepository) List(ctx context.Context, businessID string) ([]domain.Service, error) {
	return r.find(ctx, bson.M{"business_id": businessID})
}

func (r *ServiceRepository) FindByIDs(ctx context.Context, ids []string, businessID string) ([]domain.Service, error) {
	return r.find(ctx, bson.M{"business_id": businessID, "_id": bson.M{"$in": ids}})
}

func (r *ServiceRepository) FindByID(ctx context.Context, id, businessID string) (*domain.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc serviceDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id, "business_id": businessID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrServiceNotFound
		}
		return nil, err
	}
	s := doc.toDomain()
	return &s, nil
}

func (r *ServiceRepository) Upsert(ctx context.Context, s *domain.Service) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	price, err := toDecimal128(s.Price)
	if err != nil {
		return err
	}
	doc := serviceDoc{
		ID:              s.ID,
		BusinessID:      s.BusinessID,
		Name:            s.Name,
		Description:     s.Description,
		Price:           price,
		DurationMinutes: s.DurationMinutes,
		ImageURL:        s.ImageURL,
		Active:          s.Active,
	}
	_, err = r.col.ReplaceOne(ctx, bson.M{"_id": s.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert service: %w", err)
	}
	return nil
}

func (r *ServiceRepository) Delete(ctx context.Context, id, businessID string) error {
	return deleteOne(ctx, r.col, id, businessID, domain.ErrServiceNotFound)
}

func (r *ServiceRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "business_id", Value: 1}, {Key: "name", Value: 1}}})
	return err
}

func (r *ServiceRepository) find(ctx context.Context, filter bson.M) ([]domain.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []serviceDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]domain.Service, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

type StaffRepository struct {
	col *mongo.Collection
}

func NewStaffRepository(db *mongo.Database) *StaffRepository {
	return &StaffRepository{col: db.Collection(collectionStaff)}
}

type staffDoc struct {
	ID                string   `bson:"_id"`
	BusinessID        string   `bson:"business_id"`
	Name              string   `bson:"name"`
	Email             string   `bson:"email"`
	Phone             string   `bson:"phone"`
	Specialties       []string `bson:"specialties"`
	ServiceIDs        []string `bson:"service_ids"`
	YearsOfExperience int      `bson:"years_of_experience"`
	Active            bool     `bson:"active"`
}

func (d staffDoc) toDomain() domain.StaffMember {
	return domain.StaffMember{
		ID:                d.ID,
		Name:              d.Name,
		Email:             d.Email,
		Phone:             d.Phone,
		Specialties:       d.Specialties,
		ServiceIDs:        d.ServiceIDs,
		YearsOfExperience: d.YearsOfExperience,
		Active:            d.Active,
		BusinessID:        d.BusinessID,
	}
}

func (r *StaffRepository) List(ctx context.Context, businessID string) ([]domain.StaffMember, error) {
	return r.find(ctx, bson.M{"business_id": businessID})
}

// FindByService matches members whose service_ids array contains serviceID.
func (r *StaffRepository) FindByService(ctx context.Context, serviceID, businessID string) ([]domain.StaffMember, error) {
	return r.find(ctx, bson.M{"business_id": businessID, "service_ids": serviceID})
}

func (r *StaffRepository) FindByID(ctx context.Context, id, businessID string) (*domain.StaffMember, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc staffDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id, "business_id": businessID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrStaffNotFound
		}
		return nil, err
	}
	m := doc.toDomain()
	return &m, nil
}

func (r *StaffRepository) Upsert(ctx context.Context, m *domain.StaffMember) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := staffDoc{
		ID:                m.ID,
		BusinessID:        m.BusinessID,
		Name:              m.Name,
		Email:             m.Email,
		Phone:             m.Phone,
		Specialties:       m.Specialties,
		ServiceIDs:        m.ServiceIDs,
		YearsOfExperience: m.YearsOfExperience,
		Active:            m.Active,
	}
	if _, err := r.col.ReplaceOne(ctx, bson.M{"_id": m.ID}, doc, options.Replace().SetUpsert(true)); err != nil {
		return fmt.Errorf("upsert staff: %w", err)
	}
	return nil
}

func (r *StaffRepository) Delete(ctx context.Context, id, businessID string) error {
	return deleteOne(ctx, r.col, id, businessID, domain.ErrStaffNotFound)
}

func (r *StaffRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "business_id", Value: 1}, {Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "business_id", Value: 1}, {Key: "service_ids", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *StaffRepository) find(ctx context.Context, filter bson.M) ([]domain.StaffMember, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []staffDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]domain.StaffMember, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func deleteOne(ctx context.Context, col *mongo.Collection, id, businessID string, notFound error) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := col.DeleteOne(ctx, bson.M{"_id": id, "business_id": businessID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return notFound
	}
	return nil
}
