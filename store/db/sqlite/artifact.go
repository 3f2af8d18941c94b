package sqlite

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/itzayush21/travy/store"
)

func (d *DB) CreatePodArtifact(ctx context.Context, create *store.PodArtifact) (*store.PodArtifact, error) {
	stmt := `INSERT INTO pod_artifact (pod_id, kind, content, creator_id, created_ts, updated_ts) VALUES (?, ?, ?, ?, ?, ?)`
	result, err := d.db.ExecContext(ctx, stmt,
		create.PodID, string(create.Kind), create.Content, create.CreatorID, create.CreatedTs, create.UpdatedTs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create pod artifact")
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get last insert id")
	}
	create.ID = int32(id)
	return create, nil
}

func (d *DB) ListPodArtifacts(ctx context.Context, find *store.FindPodArtifact) ([]*store.PodArtifact, error) {
	where, args := []string{"1 = 1"}, []any{}

	if find.ID != nil {
		where, args = append(where, "id = ?"), append(args, *find.ID)
	}
	if find.PodID != nil {
		where, args = append(where, "pod_id = ?"), append(args, *find.PodID)
	}
	if find.Kind != nil {
		where, args = append(where, "kind = ?"), append(args, string(*find.Kind))
	}

	query := `SELECT id, pod_id, kind, content, creator_id, created_ts, updated_ts FROM pod_artifact WHERE ` + strings.Join(where, " AND ") + ` ORDER BY updated_ts DESC`
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list pod artifacts")
	}
	defer rows.Close()

	list := make([]*store.PodArtifact, 0)
	for rows.Next() {
		a := &store.PodArtifact{}
		var kind string
		if err := rows.Scan(&a.ID, &a.PodID, &kind, &a.Content, &a.CreatorID, &a.CreatedTs, &a.UpdatedTs); err != nil {
			return nil, errors.Wrap(err, "failed to scan pod artifact")
		}
		a.Kind = store.ArtifactKind(kind)
		list = append(list, a)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate pod artifacts")
	}
	return list, nil
}

func (d *DB) UpdatePodArtifact(ctx context.Context, update *store.UpdatePodArtifact) (*store.PodArtifact, error) {
	if update.Content == nil {
		return nil, errors.New("no fields to update")
	}

	stmt := `UPDATE pod_artifact SET content = ?, updated_ts = strftime('%s', 'now') WHERE id = ?`
	if _, err := d.db.ExecContext(ctx, stmt, *update.Content, update.ID); err != nil {
		return nil, errors.Wrap(err, "failed to update pod artifact")
	}

	artifacts, err := d.ListPodArtifacts(ctx, &store.FindPodArtifact{ID: &update.ID})
	if err != nil {
		return nil, err
	}
	if len(artifacts) == 0 {
		return nil, errors.New("pod artifact not found")
	}
	return artifacts[0], nil
}

func (d *DB) DeletePodArtifact(ctx context.Context, delete *store.DeletePodArtifact) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM pod_artifact WHERE id = ?`, delete.ID); err != nil {
		return errors.Wrap(err, "failed to delete pod artifact")
	}
	return nil
}
