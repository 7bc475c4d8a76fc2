package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"symdiff/core/database"
	"symdiff/core/storage"
	"symdiff/core/symdiff"

	"github.com/jellydator/ttlcache/v3"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

var (
	// ErrTooManyRecords is returned when a collection exceeds the configured maximum.
	ErrTooManyRecords = errors.New("too many records")
	// ErrNotConfigured is returned when a source needs a backend (storage or database) that is not available.
	ErrNotConfigured = errors.New("source backend not configured")
)

// Options configures a Loader. Client and DB are optional; sources that need
// a missing backend fail with ErrNotConfigured.
type Options struct {
	Client     storage.Client
	Bucket     string
	DB         *gorm.DB
	Logger     *zap.Logger
	CacheTTL   time.Duration
	MaxRecords int
}

// Loader reads record collections from files, object storage and database tables.
type Loader struct {
	client     storage.Client
	bucket     string
	db         *gorm.DB
	logger     *zap.Logger
	maxRecords int
	cache      *ttlcache.Cache[string, []byte]
	sf         singleflight.Group
}

// NewLoader creates a Loader. Call Close to stop the cache janitor.
func NewLoader(opts Options) *Loader {
	l := &Loader{
		client:     opts.Client,
		bucket:     opts.Bucket,
		db:         opts.DB,
		logger:     opts.Logger,
		maxRecords: opts.MaxRecords,
	}
	if l.logger == nil {
		l.logger = zap.NewNop()
	}
	if opts.CacheTTL > 0 {
		// Hits must not extend an entry, or a busy object would never be refreshed.
		l.cache = ttlcache.New[string, []byte](
			ttlcache.WithTTL[string, []byte](opts.CacheTTL),
			ttlcache.WithDisableTouchOnHit[string, []byte](),
		)
		go l.cache.Start()
	}
	return l
}

// Close releases the object cache.
func (l *Loader) Close() {
	if l.cache != nil {
		l.cache.Stop()
	}
}

// Load reads the collection at raw. keyProps are used to validate database
// tables before reading them.
func (l *Loader) Load(ctx context.Context, raw string, keyProps []string) ([]symdiff.Record, error) {
	c, err := l.load(ctx, raw, keyProps)
	if err != nil {
		return nil, err
	}
	if c.tabular {
		inferColumns(c.records)
	}
	return c.records, nil
}

// LoadPair loads two collections concurrently. When both are CSV or XLSX, each
// column they share is typed over both sides together.
func (l *Loader) LoadPair(ctx context.Context, left, right string, keyProps []string) ([]symdiff.Record, []symdiff.Record, error) {
	var a, b collection
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		a, err = l.load(gctx, left, keyProps)
		return err
	})
	g.Go(func() error {
		var err error
		b, err = l.load(gctx, right, keyProps)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var raw [][]symdiff.Record
	for _, c := range []collection{a, b} {
		if c.tabular {
			raw = append(raw, c.records)
		}
	}
	inferColumns(raw...)
	return a.records, b.records, nil
}

// collection is a loaded source whose tabular cells may still be untyped.
type collection struct {
	records []symdiff.Record
	tabular bool
}

func (l *Loader) load(ctx context.Context, raw string, keyProps []string) (collection, error) {
	loc, err := ParseLocation(raw)
	if err != nil {
		return collection{}, err
	}

	var c collection
	switch loc.Scheme {
	case SchemeS3:
		c, err = l.loadObject(ctx, loc)
	case SchemeDB:
		c.records, err = l.loadTable(ctx, loc.Path, keyProps)
	default:
		c, err = l.loadFile(loc.Path)
	}
	if err != nil {
		return collection{}, fmt.Errorf("failed to load %s: %w", raw, err)
	}

	if l.maxRecords > 0 && len(c.records) > l.maxRecords {
		return collection{}, fmt.Errorf("%w: %s has %d records, limit is %d", ErrTooManyRecords, raw, len(c.records), l.maxRecords)
	}

	l.logger.Debug("Loaded records", zap.String("source", raw), zap.Int("count", len(c.records)))
	return c, nil
}

func (l *Loader) loadFile(name string) (collection, error) {
	if _, _, err := DetectFormat(name); err != nil {
		return collection{}, err
	}
	f, err := os.Open(name)
	if err != nil {
		return collection{}, err
	}
	defer f.Close()

	records, tabular, err := decode(name, f)
	return collection{records: records, tabular: tabular}, err
}

func (l *Loader) loadObject(ctx context.Context, loc Location) (collection, error) {
	if l.client == nil {
		return collection{}, fmt.Errorf("%w: storage", ErrNotConfigured)
	}
	if _, _, err := DetectFormat(loc.Path); err != nil {
		return collection{}, err
	}

	bucket := loc.Bucket
	if bucket == "" {
		bucket = l.bucket
	}

	data, err := l.fetchObject(ctx, bucket, loc.Path)
	if err != nil {
		return collection{}, err
	}

	records, tabular, err := decode(loc.Path, bytes.NewReader(data))
	return collection{records: records, tabular: tabular}, err
}

// fetchObject downloads an object once per cache TTL; concurrent requests for
// the same object share one download.
func (l *Loader) fetchObject(ctx context.Context, bucket, object string) ([]byte, error) {
	key := bucket + "/" + object
	if l.cache != nil {
		if item := l.cache.Get(key); item != nil {
			return item.Value(), nil
		}
	}

	v, err, _ := l.sf.Do(key, func() (interface{}, error) {
		rc, err := l.client.GetObject(ctx, bucket, object, minio.GetObjectOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to get object %s: %w", key, err)
		}
		defer rc.Close()

		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("failed to read object %s: %w", key, err)
		}
		if l.cache != nil {
			l.cache.Set(key, data, ttlcache.DefaultTTL)
		}
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (l *Loader) loadTable(ctx context.Context, table string, keyProps []string) ([]symdiff.Record, error) {
	if l.db == nil {
		return nil, fmt.Errorf("%w: database", ErrNotConfigured)
	}

	missing, err := database.MissingColumns(ctx, l.db, table, keyProps)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w %q in table %s", symdiff.ErrMissingField, missing[0], table)
	}

	rows, err := database.LoadRows(ctx, l.db, table)
	if err != nil {
		return nil, err
	}
	records := make([]symdiff.Record, len(rows))
	for i, row := range rows {
		records[i] = symdiff.Record(row)
	}
	return records, nil
}
