package talent

import "context"

type TalentService interface {
	GetRaterBias(ctx context.Context) (*RaterBiasReport, error)
	GetNineBox(ctx context.Context) (*NineBox, error)
}
