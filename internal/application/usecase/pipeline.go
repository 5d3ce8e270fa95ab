package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/diillson/aws-cost-watch/internal/domain/entity"
	"github.com/diillson/aws-cost-watch/internal/domain/repository"
	"github.com/diillson/aws-cost-watch/internal/domain/service"
	"github.com/diillson/aws-cost-watch/internal/shared/types"
)

// pipelineRun acompanha o estado de uma única invocação.
type pipelineRun struct {
	console types.ConsoleInterface
	outcome entity.RunOutcome
}

func newPipelineRun(flow entity.Flow, console types.ConsoleInterface) *pipelineRun {
	return &pipelineRun{
		console: console,
		outcome: entity.RunOutcome{Flow: flow},
	}
}

func (r *pipelineRun) enter(state entity.PipelineState) {
	r.outcome.State = state
	r.console.LogInfo("[%s] %s", r.outcome.Flow, state)
}

// fail leva a execução para FAILED e retorna o erro tipado.
func (r *pipelineRun) fail(kind types.ErrorKind, op string, err error) *types.PipelineError {
	pe := types.NewPipelineError(kind, op, err)
	r.outcome.State = entity.StateFailed
	r.outcome.Success = false
	r.outcome.Error = pe.Error()
	r.console.LogError("[%s] %s", r.outcome.Flow, pe)
	return pe
}

// notificationFailed registra uma falha de envio sem alterar o estado.
func (r *pipelineRun) notificationFailed(op string, err error) {
	pe := types.NewPipelineError(types.ErrNotificationDispatch, op, err)
	r.outcome.NotificationError = pe.Error()
	r.console.LogWarning("[%s] %s", r.outcome.Flow, pe)
}

func (r *pipelineRun) persisted(key string) {
	if r.outcome.ArtifactKey == "" {
		r.outcome.ArtifactKey = key
	}
	r.outcome.ArtifactKeys = append(r.outcome.ArtifactKeys, key)
}

func (r *pipelineRun) done() entity.RunOutcome {
	r.outcome.State = entity.StateDone
	r.outcome.Success = true
	r.console.LogSuccess("[%s] %s", r.outcome.Flow, entity.StateDone)
	return r.outcome
}

// startOfDay retorna a meia-noite UTC do instante informado.
func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// resolveAccount registra a conta em execução. Falhas só geram aviso.
func resolveAccount(ctx context.Context, accounts repository.AccountRepository, run *pipelineRun) {
	if accounts == nil {
		return
	}
	accountID, err := accounts.GetAccountID(ctx)
	if err != nil {
		run.console.LogWarning("Could not resolve AWS account: %s", err)
		return
	}
	run.outcome.AccountID = accountID
}

// persist renderiza um artefato e grava no storage.
func persist(ctx context.Context, artifacts repository.ArtifactRepository, run *pipelineRun, op string, render func() (entity.ReportArtifact, error)) error {
	artifact, err := render()
	if err != nil {
		return run.fail(types.ErrPersistence, "render "+op, err)
	}
	if err := artifacts.Put(ctx, artifact.Key, artifact.Body, artifact.ContentType); err != nil {
		return run.fail(types.ErrPersistence, "write "+artifact.Key, err)
	}
	run.console.LogInfo("Saved %s report to %s", op, artifacts.Location(artifact.Key))
	run.persisted(artifact.Key)
	return nil
}

// reportFailure publica a notificação de erro de um fluxo, se houver destino.
func reportFailure(ctx context.Context, notifier repository.NotificationRepository, run *pipelineRun, subject string, err error) {
	if notifier == nil {
		return
	}
	// o ctx pode já ter expirado; o aviso de erro usa um prazo próprio
	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	var pe *types.PipelineError
	if errors.As(err, &pe) {
		err = pe.Err
	}
	if pubErr := notifier.Publish(notifyCtx, subject, service.ErrorMessage(run.outcome.Flow, err)); pubErr != nil {
		run.notificationFailed("publish error notification", pubErr)
	}
}

var errNegativeThreshold = errors.New("threshold must not be negative")
