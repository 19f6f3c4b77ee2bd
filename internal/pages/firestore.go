package pages

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/gdg-fisk/content-pipeline/constants"
	"github.com/gdg-fisk/content-pipeline/internal/common"
)

// FirestoreBackend is the production document collection.
type FirestoreBackend struct {
	client     *firestore.Client
	collection string
}

func NewFirestoreBackend(client *firestore.Client, collection string) *FirestoreBackend {
	return &FirestoreBackend{client: client, collection: collection}
}

func (b *FirestoreBackend) doc(name string) *firestore.DocumentRef {
	return b.client.Collection(b.collection).Doc(name)
}

func (b *FirestoreBackend) Exists(ctx context.Context, name string) (bool, error) {
	snap, err := b.doc(name).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("exists %s: %w", name, err)
	}
	return snap.Exists(), nil
}

func (b *FirestoreBackend) Get(ctx context.Context, name string) (map[string]any, bool, error) {
	snap, err := b.doc(name).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %s: %w", name, err)
	}
	return snap.Data(), true, nil
}

func (b *FirestoreBackend) Apply(ctx context.Context, name string, fields map[string]any) error {
	data := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		data[k] = v
	}
	data[constants.LastUpdatedField] = firestore.ServerTimestamp
	if _, err := b.doc(name).Set(ctx, data, firestore.MergeAll); err != nil {
		return fmt.Errorf("apply %s: %w", name, err)
	}
	return nil
}

func (b *FirestoreBackend) ReadModifyWrite(ctx context.Context, name, field string, mutate func(current any, fieldExists bool) (any, error)) error {
	ref := b.doc(name)
	return b.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("document %q: %w", name, common.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		data := snap.Data()
		current, fieldExists := data[field]
		updated, err := mutate(current, fieldExists)
		if err != nil {
			return err
		}
		return tx.Set(ref, map[string]any{
			field:                      updated,
			constants.LastUpdatedField: firestore.ServerTimestamp,
		}, firestore.MergeAll)
	})
}

func (b *FirestoreBackend) Close() error {
	return b.client.Close()
}
