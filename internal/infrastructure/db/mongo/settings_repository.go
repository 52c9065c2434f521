package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/glowbook/salon-booking/internal/core/domain"
)

const collectionSettings = "business_settings"

// SettingsRepository stores one document per business, keyed by business id.
type SettingsRepository struct {
	col *mongo.Collection
}

func NewSettingsRepository(db *mongo.Database) *SettingsRepository {
	return &SettingsRepository{col: db.Collection(collectionSettings)}
}

type openingHoursDoc struct {
	Day    string `bson:"day"`
	Open   string `bson:"open,omitempty"`
	Close  string `bson:"close,omitempty"`
	Closed bool   `bson:"closed"`
}

type settingsDoc struct {
	BusinessID  string            `bson:"_id"`
	Name        string            `bson:"name"`
	Description string            `bson:"description"`
	Phone       string            `bson:"phone"`
	Email       string            `bson:"email"`
	Address     string            `bson:"address"`
	LogoURL     string            `bson:"logo_url,omitempty"`
	Hours       []openingHoursDoc `bson:"hours"`
	UpdatedAt   time.Time         `bson:"updated_at"`
}

func (r *SettingsRepository) Get(ctx context.Context, businessID string) (*domain.BusinessSettings, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc settingsDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": businessID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	hours := make([]domain.OpeningHours, 0, len(doc.Hours))
	for _, h := range doc.Hours {
		hours = append(hours, domain.OpeningHours{Day: h.Day, Open: h.Open, Close: h.Close, Closed: h.Closed})
	}
	return &domain.BusinessSettings{
		BusinessID:  doc.BusinessID,
		Name:        doc.Name,
		Description: doc.Description,
		Phone:       doc.Phone,
		Email:       doc.Email,
		Address:     doc.Address,
		LogoURL:     doc.LogoURL,
		Hours:       hours,
		UpdatedAt:   doc.UpdatedAt.UTC(),
	}, nil
}

func (r *SettingsRepository) Save(ctx context.Context, s *domain.BusinessSettings) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	hours := make([]openingHoursDoc, 0, len(s.Hours))
	for _, h := range s.Hours {
		hours = append(hours, openingHoursDoc{Day: h.Day, Open: h.Open, Close: h.Close, Closed: h.Closed})
	}
	doc := settingsDoc{
		BusinessID:  s.BusinessID,
		Name:        s.Name,
		Description: s.Description,
		Phone:       s.Phone,
		Email:       s.Email,
		Address:     s.Address,
		LogoURL:     s.LogoURL,
		Hours:       hours,
		UpdatedAt:   s.UpdatedAt.UTC(),
	}
	if _, err := r.col.ReplaceOne(ctx, bson.M{"_id": s.BusinessID}, doc, options.Replace().SetUpsert(true)); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
