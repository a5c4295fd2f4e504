package application

import (
	"github.com/railbook/railbook/pkg/domain"
)

// ServiceData identifies one service.
type ServiceData struct {
	ServiceID int `json:"serviceId"`
}

type listServicesQuery struct {
	data ServiceData
}

func (q listServicesQuery) QueryName() string    { return "ListServices" }
func (q listServicesQuery) Payload() ServiceData { return q.data }

func NewListServicesQuery() domain.Query[ServiceData] {
	return listServicesQuery{}
}

type getServiceQuery struct {
	data ServiceData
}

func (q getServiceQuery) QueryName() string    { return "GetService" }
func (q getServiceQuery) Payload() ServiceData { return q.data }

func NewGetServiceQuery(data ServiceData) domain.Query[ServiceData] {
	return getServiceQuery{data: data}
}

// StationData identifies one station by name. Matching is case-sensitive.
type StationData struct {
	Station string `json:"station"`
}

type departingFromQuery struct {
	data StationData
}

func (q departingFromQuery) QueryName() string    { return "ServicesDepartingFrom" }
func (q departingFromQuery) Payload() StationData { return q.data }

func NewServicesDepartingFromQuery(data StationData) domain.Query[StationData] {
	return departingFromQuery{data: data}
}

type arrivingAtQuery struct {
	data StationData
}

func (q arrivingAtQuery) QueryName() string    { return "ServicesArrivingAt" }
func (q arrivingAtQuery) Payload() StationData { return q.data }

func NewServicesArrivingAtQuery(data StationData) domain.Query[StationData] {
	return arrivingAtQuery{data: data}
}
