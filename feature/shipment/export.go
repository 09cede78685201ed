package shipment

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"shipment-gateway/core/storage"
	"shipment-gateway/feature/shipment/models"
	"shipment-gateway/feature/shipment/store"

	"github.com/goccy/go-json"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

const snapshotLayout = "20060102T150405Z"

// Snapshot describes one exported mirror snapshot.
type Snapshot struct {
	Name         string    `json:"name"`
	Size         int64     `json:"size"`
	Count        int       `json:"count,omitempty"`
	LastModified time.Time `json:"last_modified"`
}

type snapshotDocument struct {
	ExportedAt time.Time         `json:"exported_at"`
	Count      int               `json:"count"`
	Shipments  []models.Shipment `json:"shipments"`
}

// Exporter writes JSON snapshots of the mirror to object storage and keeps
// the newest Retain of them.
type Exporter struct {
	store  store.Store
	client storage.Client
	bucket string
	region string
	prefix string
	retain int
	logger *zap.Logger
	now    func() time.Time
}

// NewExporter creates an exporter writing under cfg.Bucket and cfg.Prefix.
func NewExporter(st store.Store, client storage.Client, cfg storage.Config, logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{
		store:  st,
		client: client,
		bucket: cfg.Bucket,
		region: cfg.Region,
		prefix: cfg.Prefix,
		retain: cfg.Retain,
		logger: logger,
		now:    time.Now,
	}
}

// Export uploads a snapshot of every mirrored shipment, cancelled ones
// included, then prunes old snapshots.
func (e *Exporter) Export(ctx context.Context) (*Snapshot, error) {
	if err := storage.EnsureBucket(ctx, e.client, e.bucket, e.region); err != nil {
		return nil, err
	}

	items, err := e.store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load mirror: %w", err)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ShipmentID < items[j].ShipmentID })

	at := e.now().UTC()
	data, err := json.Marshal(snapshotDocument{ExportedAt: at, Count: len(items), Shipments: items})
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	name := e.prefix + "shipments-" + at.Format(snapshotLayout) + ".json"
	_, err = e.client.PutObject(ctx, e.bucket, name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("upload snapshot %s: %w", name, err)
	}
	e.logger.Info("Snapshot exported", zap.String("object", name), zap.Int("shipments", len(items)))

	if removed, err := e.prune(ctx); err != nil {
		e.logger.Warn("Snapshot pruning failed", zap.Error(err))
	} else if removed > 0 {
		e.logger.Info("Old snapshots pruned", zap.Int("removed", removed))
	}

	return &Snapshot{Name: name, Size: int64(len(data)), Count: len(items), LastModified: at}, nil
}

// List returns the stored snapshots, newest first.
func (e *Exporter) List(ctx context.Context) ([]Snapshot, error) {
	var out []Snapshot
	for obj := range e.client.ListObjects(ctx, e.bucket, minio.ListObjectsOptions{Prefix: e.prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list snapshots: %w", obj.Err)
		}
		if !strings.HasSuffix(obj.Key, ".json") {
			continue
		}
		out = append(out, Snapshot{Name: obj.Key, Size: obj.Size, LastModified: obj.LastModified})
	}
	// Names embed a sortable UTC timestamp.
	sort.Slice(out, func(i, j int) bool { return out[i].Name > out[j].Name })
	return out, nil
}

func (e *Exporter) prune(ctx context.Context) (int, error) {
	if e.retain <= 0 {
		return 0, nil
	}
	snaps, err := e.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(snaps) <= e.retain {
		return 0, nil
	}

	stale := snaps[e.retain:]
	objects := make(chan minio.ObjectInfo, len(stale))
	for _, s := range stale {
		objects <- minio.ObjectInfo{Key: s.Name}
	}
	close(objects)

	var failed int
	for rerr := range e.client.RemoveObjects(ctx, e.bucket, objects, minio.RemoveObjectsOptions{}) {
		failed++
		e.logger.Warn("Failed to remove snapshot", zap.String("object", rerr.ObjectName), zap.Error(rerr.Err))
	}
	return len(stale) - failed, nil
}
