package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"swasthya-admin/internal/config"
	"swasthya-admin/internal/queue"
	"swasthya-admin/internal/repository"
	"swasthya-admin/internal/service/audience"
	"swasthya-admin/internal/service/dispatch"
	"swasthya-admin/internal/service/media"
	"swasthya-admin/internal/service/node"
	"swasthya-admin/internal/service/notification"
	"swasthya-admin/internal/service/tree"
)

type Services struct {
	Tree         tree.Service
	Audience     audience.Service
	Dispatch     dispatch.Service
	Node         node.Service
	Notification notification.Service
	Media        media.Service
}

func NewServices(repos *repository.Repositories, redisClient *redis.Client, minioClient *minio.Client, log *zap.Logger, cfg *config.Config) *Services {
	treeService := tree.NewService(repos.Node, redisClient, log, tree.Options{
		Concurrency: cfg.TreeConcurrency,
		CacheTTL:    cfg.TreeCacheTTL,
	})
	audienceService := audience.NewService(repos.Node, repos.Subscriber)
	pushQueue := queue.NewRedisPushQueue(redisClient, cfg.PushQueueKey)
	dispatchService := dispatch.NewService(
		repos.Node,
		repos.DeviceToken,
		repos.Notification,
		audienceService,
		pushQueue,
		log,
		cfg.DispatchTimeout,
		cfg.DeepLinkScheme,
	)
	nodeService := node.NewService(repos.Node, treeService, log)
	notificationService := notification.NewService(repos.Notification)
	mediaService := media.NewService(minioClient, cfg)

	return &Services{
		Tree:         treeService,
		Audience:     audienceService,
		Dispatch:     dispatchService,
		Node:         nodeService,
		Notification: notificationService,
		Media:        mediaService,
	}
}
