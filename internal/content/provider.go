package content

import (
	"context"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/save4dream/pkg/types"
)

// Provider serves content from a primary Generator and falls back to
// Static on any failure. Failures are logged, never returned.
type Provider struct {
	primary Generator
	static  Static
	logger  *zap.Logger
}

// NewProvider creates a Provider. primary may be nil, in which case only
// static content is served. A nil logger discards logs.
func NewProvider(primary Generator, static Static, logger *zap.Logger) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provider{primary: primary, static: static, logger: logger}
}

// DailyTip returns a tip, advancing rot when static content is used.
func (p *Provider) DailyTip(ctx context.Context, rot *Rotation) string {
	if p.primary != nil {
		tip, err := p.primary.DailyTip(ctx)
		if err == nil {
			return tip
		}
		p.logger.Warn("daily tip generation failed, using fallback", zap.Error(err))
	}
	return p.static.Tip(rot)
}

// MagicMission returns a mission draft and whether it was generated.
func (p *Provider) MagicMission(ctx context.Context, rot *Rotation) (MissionDraft, bool) {
	if p.primary != nil {
		d, err := p.primary.MagicMission(ctx)
		if err == nil {
			if d, err = d.Normalize(); err == nil {
				return d, true
			}
		}
		p.logger.Warn("mission generation failed, using fallback", zap.Error(err))
	}
	return p.static.Mission(rot), false
}

// Lesson returns a quiz lesson.
func (p *Provider) Lesson(ctx context.Context, rot *Rotation) types.Lesson {
	if p.primary != nil {
		l, err := p.primary.Lesson(ctx)
		if err == nil {
			if err = l.Validate(); err == nil {
				return l
			}
		}
		p.logger.Warn("lesson generation failed, using fallback", zap.Error(err))
	}
	return p.static.Lesson(rot)
}
