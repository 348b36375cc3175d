package news

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"smarttrade-bot/internal/errors"
	"smarttrade-bot/internal/mocks"
	"smarttrade-bot/internal/types"
)

type ServiceTestSuite struct {
	suite.Suite
	ctrl   *gomock.Controller
	source *mocks.MockNewsSource
	store  *mocks.MockArticleStore
	svc    *Service
	today  time.Time
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func (suite *ServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.source = mocks.NewMockNewsSource(suite.ctrl)
	suite.store = mocks.NewMockArticleStore(suite.ctrl)
	suite.today = time.Date(2026, time.October, 14, 12, 0, 0, 0, time.UTC)
	suite.svc = NewService(suite.source, suite.store, &ServiceConfig{PageSize: 2},
		WithClock(func() time.Time { return suite.today }))
}

func (suite *ServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func newArticle(url string, region types.Region) types.Article {
	return types.Article{
		ID:          ArticleID(url),
		PublishedAt: time.Date(2026, time.October, 14, 9, 0, 0, 0, time.UTC),
		Title:       "Title " + url,
		URL:         url,
		Region:      region,
		Date:        "2026-10-14",
	}
}

func (suite *ServiceTestSuite) TestFetchUnstoredStopsAtShortPageAndStoredArticle() {
	a1 := newArticle("https://news.test/a1", types.RegionUnitedStates)
	a2 := newArticle("https://news.test/a2", types.RegionUnitedStates)
	a3 := newArticle("https://news.test/a3", types.RegionUnitedStates)
	g1 := newArticle("https://news.test/g1", types.RegionGlobal)
	stored := newArticle("https://news.test/old", types.RegionGlobal)
	g2 := newArticle("https://news.test/g2", types.RegionGlobal)

	suite.store.EXPECT().FindAllAtDate(gomock.Any(), suite.today).Return([]types.Article{stored}, nil)
	gomock.InOrder(
		suite.source.EXPECT().FetchPage(gomock.Any(), suite.today, types.RegionUnitedStates, 0, 2).Return([]types.Article{a1, a2}, nil),
		suite.source.EXPECT().FetchPage(gomock.Any(), suite.today, types.RegionUnitedStates, 2, 2).Return([]types.Article{a3}, nil),
		suite.source.EXPECT().FetchPage(gomock.Any(), suite.today, types.RegionGlobal, 0, 2).Return([]types.Article{g1, stored}, nil),
	)

	got, err := suite.svc.FetchUnstored(context.Background(), suite.today)
	suite.Require().NoError(err)
	suite.Equal([]types.Article{a1, a2, a3, g1}, got)
	suite.NotContains(got, g2)
}

func (suite *ServiceTestSuite) TestFetchUnstoredStopsAtEmptyPage() {
	a1 := newArticle("https://news.test/a1", types.RegionUnitedStates)
	a2 := newArticle("https://news.test/a2", types.RegionUnitedStates)

	suite.store.EXPECT().FindAllAtDate(gomock.Any(), gomock.Any()).Return(nil, nil)
	suite.source.EXPECT().FetchPage(gomock.Any(), gomock.Any(), types.RegionUnitedStates, 0, 2).Return([]types.Article{a1, a2}, nil)
	suite.source.EXPECT().FetchPage(gomock.Any(), gomock.Any(), types.RegionUnitedStates, 2, 2).Return(nil, nil)
	suite.source.EXPECT().FetchPage(gomock.Any(), gomock.Any(), types.RegionGlobal, 0, 2).Return(nil, nil)

	got, err := suite.svc.FetchUnstored(context.Background(), suite.today)
	suite.Require().NoError(err)
	suite.Len(got, 2)
}

func (suite *ServiceTestSuite) TestCollectSavesFetchedArticles() {
	a1 := newArticle("https://news.test/a1", types.RegionUnitedStates)
	g1 := newArticle("https://news.test/g1", types.RegionGlobal)

	suite.store.EXPECT().FindAllAtDate(gomock.Any(), suite.today).Return(nil, nil)
	suite.source.EXPECT().FetchPage(gomock.Any(), gomock.Any(), types.RegionUnitedStates, 0, 2).Return([]types.Article{a1}, nil)
	suite.source.EXPECT().FetchPage(gomock.Any(), gomock.Any(), types.RegionGlobal, 0, 2).Return([]types.Article{g1}, nil)
	suite.store.EXPECT().SaveAll(gomock.Any(), []types.Article{a1, g1}).Return(2, nil)

	saved, err := suite.svc.Collect(context.Background())
	suite.Require().NoError(err)
	suite.Equal(2, saved)
}

func (suite *ServiceTestSuite) TestCollectKeepsPartialResults() {
	a1 := newArticle("https://news.test/a1", types.RegionUnitedStates)
	boom := stderrors.New("upstream down")

	suite.store.EXPECT().FindAllAtDate(gomock.Any(), gomock.Any()).Return(nil, nil)
	suite.source.EXPECT().FetchPage(gomock.Any(), gomock.Any(), types.RegionUnitedStates, 0, 2).Return([]types.Article{a1}, nil)
	suite.source.EXPECT().FetchPage(gomock.Any(), gomock.Any(), types.RegionGlobal, 0, 2).Return(nil, boom)
	suite.store.EXPECT().SaveAll(gomock.Any(), []types.Article{a1}).Return(1, nil)

	saved, err := suite.svc.Collect(context.Background())
	suite.Equal(1, saved)
	suite.ErrorIs(err, boom)
}

func (suite *ServiceTestSuite) TestCollectFailsWhenNothingFetched() {
	suite.store.EXPECT().FindAllAtDate(gomock.Any(), gomock.Any()).Return(nil, errors.New(errors.ErrCodeQueryFailed, "locked"))

	saved, err := suite.svc.Collect(context.Background())
	suite.Zero(saved)
	suite.True(errors.HasCode(err, errors.ErrCodeNewsFetchFailed))
}

func (suite *ServiceTestSuite) TestFetchHonoursCancellation() {
	svc := NewService(suite.source, suite.store, &ServiceConfig{PageSize: 1, PageDelay: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())

	suite.store.EXPECT().FindAllAtDate(gomock.Any(), gomock.Any()).Return(nil, nil)
	suite.source.EXPECT().FetchPage(gomock.Any(), gomock.Any(), types.RegionUnitedStates, 0, 1).
		DoAndReturn(func(context.Context, time.Time, types.Region, int, int) ([]types.Article, error) {
			cancel()
			return []types.Article{newArticle("https://news.test/a1", types.RegionUnitedStates)}, nil
		})

	got, err := svc.FetchUnstored(ctx, suite.today)
	suite.ErrorIs(err, context.Canceled)
	suite.Len(got, 1)
}
