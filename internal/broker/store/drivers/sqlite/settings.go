package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/seatbroker/internal/broker/store/drivers/sqlite/gen"
)

type settingsRepo struct {
	q *gen.Queries
}

func (r *settingsRepo) GetSetting(ctx context.Context, key string) (string, error) {
	value, err := r.q.GetSetting(ctx, key)
	if err != nil {
		return "", mapNotFound(err)
	}
	return value, nil
}

func (r *settingsRepo) SetSetting(ctx context.Context, key, value string) error {
	return r.q.UpsertSetting(ctx, gen.UpsertSettingParams{
		Key:       key,
		Value:     value,
		UpdatedAt: toMillis(time.Now()),
	})
}

func (r *settingsRepo) InsertSettingIfAbsent(ctx context.Context, key, value string) error {
	return r.q.InsertSettingIfAbsent(ctx, gen.InsertSettingIfAbsentParams{
		Key:       key,
		Value:     value,
		UpdatedAt: toMillis(time.Now()),
	})
}

func (r *settingsRepo) ListSettings(ctx context.Context) (map[string]string, error) {
	rows, err := r.q.ListSettings(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Value
	}
	return out, nil
}

func (r *settingsRepo) DeleteSetting(ctx context.Context, key string) error {
	return r.q.DeleteSetting(ctx, key)
}
