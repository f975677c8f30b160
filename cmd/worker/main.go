package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/paulocell/paulocell-api/internal/infrastructure/postgres"
	"github.com/paulocell/paulocell-api/jobs"
	"github.com/paulocell/paulocell-api/pkg/config"
	"github.com/paulocell/paulocell-api/pkg/logger"
)

// Varredura diária da lixeira às 03:00 UTC, fora do horário da loja.
const trashPurgeCronSpec = "0 3 * * *"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando worker")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com o PostgreSQL")
	}
	defer pool.Close()

	userDataRepo := postgres.NewUserDataRepository(pool)

	redisOpts := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}

	purgeTask, err := jobs.NewTrashPurgeTask(jobs.TrashPurgePayload{
		RetentionDays: cfg.Trash.RetentionDays,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("montar tarefa de varredura")
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: redisOpts,
		Logger:    log,
		Handlers: map[string]asynq.HandlerFunc{
			jobs.TaskTrashPurge: jobs.NewTrashPurgeHandler(userDataRepo, log),
		},
		Cron: []jobs.CronRegistration{
			{Spec: trashPurgeCronSpec, Task: purgeTask, Options: []asynq.Option{asynq.Queue(jobs.QueueDefault)}},
		},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("montar worker")
	}

	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("worker finalizado com erro")
	}

	log.Info().Msg("worker encerrado")
}
