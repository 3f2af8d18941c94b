package sqlite

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/itzayush21/travy/store"
)

func (d *DB) CreatePod(ctx context.Context, create *store.Pod) (*store.Pod, error) {
	stmt := `
		INSERT INTO pod (
			name, description, invite_code, creator_id, destination,
			start_date, end_date, status, estimated_budget, preferred_transport,
			tags, created_ts
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := d.db.ExecContext(ctx, stmt,
		create.Name, create.Description, create.InviteCode, create.CreatorID, create.Destination,
		create.StartDate, create.EndDate, string(create.Status), create.EstimatedBudget, create.PreferredTransport,
		create.Tags, create.CreatedTs,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create pod")
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get last insert id")
	}
	create.ID = int32(id)
	return create, nil
}

func (d *DB) ListPods(ctx context.Context, find *store.FindPod) ([]*store.Pod, error) {
	where, args := []string{"1 = 1"}, []any{}

	if find.ID != nil {
		where, args = append(where, "pod.id = ?"), append(args, *find.ID)
	}
	if find.InviteCode != nil {
		where, args = append(where, "pod.invite_code = ?"), append(args, *find.InviteCode)
	}

	from := `pod`
	if find.MemberID != nil {
		from = `pod JOIN pod_member ON pod_member.pod_id = pod.id`
		where, args = append(where, "pod_member.user_id = ?"), append(args, *find.MemberID)
	}

	query := `
		SELECT pod.id, pod.name, pod.description, pod.invite_code, pod.creator_id,
			pod.destination, pod.start_date, pod.end_date, pod.status,
			pod.estimated_budget, pod.preferred_transport, pod.tags, pod.created_ts
		FROM ` + from + ` WHERE ` + strings.Join(where, " AND ") + ` ORDER BY pod.created_ts DESC`
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list pods")
	}
	defer rows.Close()

	list := make([]*store.Pod, 0)
	for rows.Next() {
		p := &store.Pod{}
		var status string
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.InviteCode, &p.CreatorID,
			&p.Destination, &p.StartDate, &p.EndDate, &status,
			&p.EstimatedBudget, &p.PreferredTransport, &p.Tags, &p.CreatedTs,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan pod")
		}
		p.Status = store.PodStatus(status)
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate pods")
	}
	return list, nil
}

func (d *DB) UpdatePod(ctx context.Context, update *store.UpdatePod) (*store.Pod, error) {
	set, args := []string{}, []any{}

	if update.Name != nil {
		set, args = append(set, "name = ?"), append(args, *update.Name)
	}
	if update.Description != nil {
		set, args = append(set, "description = ?"), append(args, *update.Description)
	}
	if update.Destination != nil {
		set, args = append(set, "destination = ?"), append(args, *update.Destination)
	}
	if update.StartDate != nil {
		set, args = append(set, "start_date = ?"), append(args, *update.StartDate)
	}
	if update.EndDate != nil {
		set, args = append(set, "end_date = ?"), append(args, *update.EndDate)
	}
	if update.Status != nil {
		set, args = append(set, "status = ?"), append(args, string(*update.Status))
	}
	if update.EstimatedBudget != nil {
		set, args = append(set, "estimated_budget = ?"), append(args, *update.EstimatedBudget)
	}
	if update.PreferredTransport != nil {
		set, args = append(set, "preferred_transport = ?"), append(args, *update.PreferredTransport)
	}
	if update.Tags != nil {
		set, args = append(set, "tags = ?"), append(args, *update.Tags)
	}
	if len(set) == 0 {
		return nil, errors.New("no fields to update")
	}

	args = append(args, update.ID)
	stmt := `UPDATE pod SET ` + strings.Join(set, ", ") + ` WHERE id = ?`
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return nil, errors.Wrap(err, "failed to update pod")
	}

	pods, err := d.ListPods(ctx, &store.FindPod{ID: &update.ID})
	if err != nil {
		return nil, err
	}
	if len(pods) == 0 {
		return nil, errors.New("pod not found")
	}
	return pods[0], nil
}

func (d *DB) DeletePod(ctx context.Context, delete *store.DeletePod) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM pod WHERE id = ?`, delete.ID); err != nil {
		return errors.Wrap(err, "failed to delete pod")
	}
	return nil
}

func (d *DB) CreatePodMember(ctx context.Context, create *store.PodMember) (*store.PodMember, error) {
	stmt := `INSERT INTO pod_member (pod_id, user_id, role, joined_ts) VALUES (?, ?, ?, ?)`
	result, err := d.db.ExecContext(ctx, stmt, create.PodID, create.UserID, string(create.Role), create.JoinedTs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create pod member")
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get last insert id")
	}
	create.ID = int32(id)
	return create, nil
}

func (d *DB) ListPodMembers(ctx context.Context, find *store.FindPodMember) ([]*store.PodMember, error) {
	where, args := []string{"1 = 1"}, []any{}

	if find.PodID != nil {
		where, args = append(where, "pod_id = ?"), append(args, *find.PodID)
	}
	if find.UserID != nil {
		where, args = append(where, "user_id = ?"), append(args, *find.UserID)
	}

	query := `SELECT id, pod_id, user_id, role, joined_ts FROM pod_member WHERE ` + strings.Join(where, " AND ") + ` ORDER BY joined_ts ASC`
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list pod members")
	}
	defer rows.Close()

	list := make([]*store.PodMember, 0)
	for rows.Next() {
		m := &store.PodMember{}
		var role string
		if err := rows.Scan(&m.ID, &m.PodID, &m.UserID, &role, &m.JoinedTs); err != nil {
			return nil, errors.Wrap(err, "failed to scan pod member")
		}
		m.Role = store.PodRole(role)
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate pod members")
	}
	return list, nil
}

func (d *DB) DeletePodMember(ctx context.Context, delete *store.DeletePodMember) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM pod_member WHERE pod_id = ? AND user_id = ?`, delete.PodID, delete.UserID); err != nil {
		return errors.Wrap(err, "failed to delete pod member")
	}
	return nil
}
