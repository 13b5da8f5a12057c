// Package store wraps the mongo collections the API works on. Every
// operation opens a span so traces show which collection a request hit.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	UsersCollection        = "users"
	ProductsCollection     = "products"
	CategoriesCollection   = "categories"
	BookingsCollection     = "bookings"
	ReservationsCollection = "reservations"
	PurchasesCollection    = "purchases"
)

// ErrNotConnected is returned when the process started without a usable
// mongo client.
var ErrNotConnected = errors.New("store: database not connected")

var tracer = otel.Tracer("bhojon-backend/store")

type collection struct {
	name string
	coll *mongo.Collection
}

func newCollection(db *mongo.Database, name string) collection {
	c := collection{name: name}
	if db != nil {
		c.coll = db.Collection(name)
	}
	return c
}

func (c collection) span(ctx context.Context, op string) (context.Context, trace.Span) {
	return tracer.Start(ctx, c.name+"."+op, trace.WithAttributes(
		attribute.String("db.system", "mongodb"),
		attribute.String("db.collection", c.name),
		attribute.String("db.operation", op),
	), trace.WithSpanKind(trace.SpanKindClient))
}

func finish(span trace.Span, err error) {
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (c collection) find(ctx context.Context, filter interface{}, out interface{}, opts ...*options.FindOptions) (err error) {
	if c.coll == nil {
		return ErrNotConnected
	}
	ctx, span := c.span(ctx, "find")
	defer func() { finish(span, err) }()

	cur, err := c.coll.Find(ctx, filter, opts...)
	if err != nil {
		return err
	}
	return cur.All(ctx, out)
}

func (c collection) findOne(ctx context.Context, filter interface{}, out interface{}) (err error) {
	if c.coll == nil {
		return ErrNotConnected
	}
	ctx, span := c.span(ctx, "findOne")
	defer func() { finish(span, err) }()

	return c.coll.FindOne(ctx, filter).Decode(out)
}

func (c collection) insert(ctx context.Context, doc interface{}) (id primitive.ObjectID, err error) {
	if c.coll == nil {
		return primitive.NilObjectID, ErrNotConnected
	}
	ctx, span := c.span(ctx, "insertOne")
	defer func() { finish(span, err) }()

	res, err := c.coll.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, _ = res.InsertedID.(primitive.ObjectID)
	return id, nil
}

func (c collection) setByID(ctx context.Context, id primitive.ObjectID, set bson.M) (res *mongo.UpdateResult, err error) {
	if c.coll == nil {
		return nil, ErrNotConnected
	}
	ctx, span := c.span(ctx, "updateOne")
	defer func() { finish(span, err) }()

	return c.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
}

func (c collection) deleteByID(ctx context.Context, id primitive.ObjectID) (res *mongo.DeleteResult, err error) {
	if c.coll == nil {
		return nil, ErrNotConnected
	}
	ctx, span := c.span(ctx, "deleteOne")
	defer func() { finish(span, err) }()

	return c.coll.DeleteOne(ctx, bson.M{"_id": id})
}

func (c collection) count(ctx context.Context, filter interface{}) (n int64, err error) {
	if c.coll == nil {
		return 0, ErrNotConnected
	}
	ctx, span := c.span(ctx, "countDocuments")
	defer func() { finish(span, err) }()

	return c.coll.CountDocuments(ctx, filter)
}

func (c collection) aggregate(ctx context.Context, pipeline mongo.Pipeline, out interface{}) (err error) {
	if c.coll == nil {
		return ErrNotConnected
	}
	ctx, span := c.span(ctx, "aggregate")
	defer func() { finish(span, err) }()

	cur, err := c.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	return cur.All(ctx, out)
}
