package usecase

import (
	"context"

	"github.com/xavierca1/ligue-crm/internal/infra/logger"
)

// Pipeline executa passos em ordem e para no primeiro erro.
// Não há compensação: o que já foi gravado fica gravado.
type Pipeline struct {
	steps []Step
}

type Step struct {
	Name string
	Fn   func(context.Context) error
}

func NewPipeline() *Pipeline {
	return &Pipeline{steps: []Step{}}
}

func (p *Pipeline) AddStep(name string, fn func(context.Context) error) *Pipeline {
	p.steps = append(p.steps, Step{name, fn})
	return p
}

func (p *Pipeline) Execute(ctx context.Context) error {
	completed := make([]string, 0, len(p.steps))

	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			return &StepError{Step: step.Name, Completed: completed, Err: err}
		}
		if err := step.Fn(ctx); err != nil {
			if len(completed) > 0 {
				logger.WithFields(map[string]interface{}{
					"step":      step.Name,
					"completed": completed,
				}).Warn("⚠️ pipeline interrompido com escrita parcial")
			}
			return &StepError{Step: step.Name, Completed: completed, Err: err}
		}
		completed = append(completed, step.Name)
	}

	return nil
}
