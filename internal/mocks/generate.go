package mocks

//go:generate mockgen -destination=./mock_broker.go -package=mocks smarttrade-bot/internal/interfaces Broker
//go:generate mockgen -destination=./mock_forecaster.go -package=mocks smarttrade-bot/internal/interfaces Forecaster,FundamentalAnalyzer
//go:generate mockgen -destination=./mock_news.go -package=mocks smarttrade-bot/internal/interfaces ArticleStore,NewsSource
//go:generate mockgen -destination=./mock_notifier.go -package=mocks smarttrade-bot/internal/interfaces Notifier
//go:generate mockgen -destination=./mock_cycle.go -package=mocks smarttrade-bot/internal/interfaces Cycle,Journal
