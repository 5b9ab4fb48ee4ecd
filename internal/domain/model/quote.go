package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QuoteRecord is one entry of the calculation history.
type QuoteRecord struct {
	ID           primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	Timestamp    time.Time              `bson:"timestamp" json:"timestamp"`
	RequestID    string                 `bson:"request_id,omitempty" json:"request_id,omitempty"`
	ProductID    string                 `bson:"product_id" json:"product_id"`
	Origin       string                 `bson:"origin" json:"origin"`
	Destination  string                 `bson:"destination,omitempty" json:"destination,omitempty"`
	ShipDate     time.Time              `bson:"ship_date" json:"ship_date"`
	AllZones     bool                   `bson:"all_zones" json:"all_zones"`
	Zone         int                    `bson:"zone,omitempty" json:"zone,omitempty"`
	Chargeable   float64                `bson:"chargeable_weight" json:"chargeable_weight"`
	Unit         string                 `bson:"unit" json:"unit"`
	Unauthorized bool                   `bson:"unauthorized" json:"unauthorized"`
	TotalAmount  float64                `bson:"total_amount" json:"total_amount"`
	Fields       map[string]interface{} `bson:"fields,omitempty" json:"fields,omitempty"`
}

// WithField adds a field to the record's Fields map.
func (q *QuoteRecord) WithField(key string, value interface{}) *QuoteRecord {
	if q.Fields == nil {
		q.Fields = make(map[string]interface{})
	}
	q.Fields[key] = value
	return q
}

// QuoteQueryOptions filters the calculation history.
type QuoteQueryOptions struct {
	ProductID string
	Zone      int
	StartTime *time.Time
	EndTime   *time.Time
	Limit     int
	Skip      int
}
