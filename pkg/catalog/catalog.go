// Package catalog reads specimen records from a MongoDB collection.
//
// Documents use the field names of [record.Record]'s bson tags:
//
//	{uid: "000123", number: "KG 12", genus: "Lithops", species: "lesliei",
//	 tags: ["windowsill"], is_seed: false, owner: "anna"}
//
// The catalog is read-only; it never writes records.
package catalog

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/labelsheet/pkg/errors"
	"github.com/matzehuels/labelsheet/pkg/observability"
	"github.com/matzehuels/labelsheet/pkg/record"
)

// Defaults for Options.
const (
	DefaultDatabase   = "labelsheet"
	DefaultCollection = "plants"
	DefaultTimeout    = 10 * time.Second
)

// Options configures the catalog connection.
type Options struct {
	URI        string        `toml:"uri"`
	Database   string        `toml:"database"`
	Collection string        `toml:"collection"`
	Owner      string        `toml:"owner"`
	Timeout    time.Duration `toml:"-"`
}

func (o *Options) setDefaults() {
	if o.Database == "" {
		o.Database = DefaultDatabase
	}
	if o.Collection == "" {
		o.Collection = DefaultCollection
	}
	if o.Timeout == 0 {
		o.Timeout = DefaultTimeout
	}
}

// Catalog is an open record collection.
type Catalog struct {
	client *mongo.Client
	coll   *mongo.Collection
	opts   Options
}

// Open connects to MongoDB and checks the server answers.
func Open(ctx context.Context, opts Options) (*Catalog, error) {
	opts.setDefaults()
	if opts.URI == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "catalog uri is required")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI).SetTimeout(opts.Timeout))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "connect catalog")
	}
	pingCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "ping catalog")
	}

	return &Catalog{
		client: client,
		coll:   client.Database(opts.Database).Collection(opts.Collection),
		opts:   opts,
	}, nil
}

// Close disconnects from the server.
func (c *Catalog) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// Records returns the records matching f, ordered by identifier.
func (c *Catalog) Records(ctx context.Context, f record.Filter) (recs []record.Record, err error) {
	start := time.Now()
	observability.Store().OnQuery(ctx, c.opts.Collection)
	defer func() {
		observability.Store().OnQueryComplete(ctx, c.opts.Collection, len(recs), time.Since(start), err)
	}()

	cur, err := c.coll.Find(ctx, Query(f, c.opts.Owner), options.Find().SetSort(bson.D{{Key: "uid", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "query %s", c.opts.Collection)
	}
	if err := cur.All(ctx, &recs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRecord, err, "decode %s", c.opts.Collection)
	}
	return recs, nil
}

// Identifiers returns every identifier in the collection, for generating
// new unique ones.
func (c *Catalog) Identifiers(ctx context.Context) (map[string]struct{}, error) {
	values, err := c.coll.Distinct(ctx, "uid", bson.D{})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "list identifiers")
	}
	ids := make(map[string]struct{}, len(values))
	for _, v := range values {
		ids[fmt.Sprint(v)] = struct{}{}
	}
	return ids, nil
}

// Query translates a filter into a MongoDB query document. Genus and tag
// match case-insensitively and in full; an empty owner matches everyone.
func Query(f record.Filter, owner string) bson.D {
	q := bson.D{}
	if owner != "" {
		q = append(q, bson.E{Key: "owner", Value: owner})
	}
	if record.Present(f.Genus) {
		q = append(q, bson.E{Key: "genus", Value: exact(f.Genus)})
	}
	if record.Present(f.Tag) {
		q = append(q, bson.E{Key: "tags", Value: exact(f.Tag)})
	}
	switch f.Seeds {
	case record.SeedsOnly:
		q = append(q, bson.E{Key: "is_seed", Value: true})
	case record.PlantsOnly:
		q = append(q, bson.E{Key: "is_seed", Value: bson.D{{Key: "$ne", Value: true}}})
	}
	return q
}

func exact(s string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(strings.TrimSpace(s)) + "$", Options: "i"}
}
