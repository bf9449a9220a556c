package handler

type ContextKey string

var (
	RoleCtxKey          ContextKey = "role"
	SubCtxKey           ContextKey = "sub"
	MyInfoCtx           ContextKey = "myInfo"
	DriverCtx           ContextKey = "driver"
	RouteCtx            ContextKey = "route"
	OrderCtx            ContextKey = "order"
	SimulationResultCtx ContextKey = "simulationResult"
)
