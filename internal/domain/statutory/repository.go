package statutory

import "context"

type Repository interface {
	GetConfig(ctx context.Context) (Config, error)
	UpsertConfig(ctx context.Context, c Config) (Config, error)
	GetLeavePolicy(ctx context.Context) (LeavePolicy, error)
	UpsertLeavePolicy(ctx context.Context, p LeavePolicy) (LeavePolicy, error)
}
