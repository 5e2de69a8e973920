package entity

// Province labels written to collection records.
const (
	ProvinceGauteng = "Gauteng"
	ProvinceLimpopo = "Limpopo"
)

// limpopoAgents is the deliberate two-bucket assignment of field agents
// to provinces. Only these two agents operate out of Limpopo; everybody
// else is booked under Gauteng. Known scaling limitation: grow this into
// a proper agent registry if the agent roster grows.
var limpopoAgents = map[string]struct{}{
	"Neo":                {},
	"Ngoako David Railo": {},
}

// ProvinceForAgent maps an agent name to the province recorded on
// collection transactions.
func ProvinceForAgent(agent string) string {
	if _, ok := limpopoAgents[agent]; ok {
		return ProvinceLimpopo
	}
	return ProvinceGauteng
}
