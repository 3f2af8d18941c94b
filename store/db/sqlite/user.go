package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/pkg/errors"

	"github.com/itzayush21/travy/store"
)

func (d *DB) CreateUser(ctx context.Context, create *store.User) (*store.User, error) {
	stmt := `INSERT INTO user (uid, email, nickname, password_hash, created_ts) VALUES (?, ?, ?, ?, ?)`
	result, err := d.db.ExecContext(ctx, stmt, create.UID, create.Email, create.Nickname, create.PasswordHash, create.CreatedTs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create user")
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get last insert id")
	}
	create.ID = int32(id)
	return create, nil
}

func (d *DB) ListUsers(ctx context.Context, find *store.FindUser) ([]*store.User, error) {
	where, args := []string{"1 = 1"}, []any{}

	if find.ID != nil {
		where, args = append(where, "id = ?"), append(args, *find.ID)
	}
	if find.UID != nil {
		where, args = append(where, "uid = ?"), append(args, *find.UID)
	}
	if find.Email != nil {
		where, args = append(where, "email = ?"), append(args, *find.Email)
	}

	query := `SELECT id, uid, email, nickname, password_hash, created_ts FROM user WHERE ` + strings.Join(where, " AND ") + ` ORDER BY id ASC`
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}
	defer rows.Close()

	list := make([]*store.User, 0)
	for rows.Next() {
		u := &store.User{}
		if err := rows.Scan(&u.ID, &u.UID, &u.Email, &u.Nickname, &u.PasswordHash, &u.CreatedTs); err != nil {
			return nil, errors.Wrap(err, "failed to scan user")
		}
		list = append(list, u)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate users")
	}
	return list, nil
}

func (d *DB) UpdateUser(ctx context.Context, update *store.UpdateUser) (*store.User, error) {
	set, args := []string{}, []any{}

	if update.Nickname != nil {
		set, args = append(set, "nickname = ?"), append(args, *update.Nickname)
	}
	if update.PasswordHash != nil {
		set, args = append(set, "password_hash = ?"), append(args, *update.PasswordHash)
	}
	if len(set) == 0 {
		return nil, errors.New("no fields to update")
	}

	args = append(args, update.ID)
	stmt := `UPDATE user SET ` + strings.Join(set, ", ") + ` WHERE id = ?`
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return nil, errors.Wrap(err, "failed to update user")
	}

	users, err := d.ListUsers(ctx, &store.FindUser{ID: &update.ID})
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, errors.New("user not found")
	}
	return users[0], nil
}

func (d *DB) DeleteUser(ctx context.Context, delete *store.DeleteUser) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM user WHERE id = ?`, delete.ID); err != nil {
		return errors.Wrap(err, "failed to delete user")
	}
	return nil
}

func (d *DB) UpsertUserProfile(ctx context.Context, upsert *store.UserProfile) (*store.UserProfile, error) {
	stmt := `
		INSERT INTO user_profile (
			user_id, blood_group, health_conditions, allergies,
			food_preferences, travel_preferences, preferred_language,
			emergency_name, emergency_phone
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			blood_group = excluded.blood_group,
			health_conditions = excluded.health_conditions,
			allergies = excluded.allergies,
			food_preferences = excluded.food_preferences,
			travel_preferences = excluded.travel_preferences,
			preferred_language = excluded.preferred_language,
			emergency_name = excluded.emergency_name,
			emergency_phone = excluded.emergency_phone`
	if _, err := d.db.ExecContext(ctx, stmt,
		upsert.UserID, upsert.BloodGroup, upsert.HealthConditions, upsert.Allergies,
		upsert.FoodPreferences, upsert.TravelPreferences, upsert.PreferredLanguage,
		upsert.EmergencyName, upsert.EmergencyPhone,
	); err != nil {
		return nil, errors.Wrap(err, "failed to upsert user profile")
	}
	return upsert, nil
}

func (d *DB) GetUserProfile(ctx context.Context, find *store.FindUserProfile) (*store.UserProfile, error) {
	query := `
		SELECT user_id, blood_group, health_conditions, allergies,
			food_preferences, travel_preferences, preferred_language,
			emergency_name, emergency_phone
		FROM user_profile WHERE user_id = ?`
	p := &store.UserProfile{}
	err := d.db.QueryRowContext(ctx, query, find.UserID).Scan(
		&p.UserID, &p.BloodGroup, &p.HealthConditions, &p.Allergies,
		&p.FoodPreferences, &p.TravelPreferences, &p.PreferredLanguage,
		&p.EmergencyName, &p.EmergencyPhone,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to get user profile")
	}
	return p, nil
}
