package handler

import (
	"github.com/lprnmns/alperenmanas-portfolio-sub000/internal/service"
	"github.com/lprnmns/alperenmanas-portfolio-sub000/internal/store"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	roadmap    *service.RoadmapService
	curriculum *service.CurriculumService
	tags       *service.TagService
	auth       *service.AuthService
	ownerID    string
}

// NewAPI constructs a handler set with shared services.
// ownerID 限定公开接口只展示该账号的数据；为空时展示全部公开记录
func NewAPI(s store.Store, ownerID string) *API {
	return &API{
		roadmap:    service.NewRoadmapService(s),
		curriculum: service.NewCurriculumService(s),
		tags:       service.NewTagService(s),
		auth:       service.NewAuthService(s),
		ownerID:    ownerID,
	}
}

func (a *API) publicFilter() store.Filter {
	return store.Filter{UserID: a.ownerID, PublicOnly: true}
}
