package domain

type AnalyticsSummary struct {
	TotalArticles      int
	ArticlesByStatus   []ArticleStat
	ArticlesBySport    []ArticleStat
	TotalViews         int
	PublishedLastWeek  int
	TopArticles        []TopArticle
	AgentTasksByStatus []ArticleStat
}
