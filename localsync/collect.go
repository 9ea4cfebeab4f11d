package localsync

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/spacemeshos/go-bloomsync/common/types"
	"github.com/spacemeshos/go-bloomsync/log"
)

// collectOps fills the HasMap with the ops held by each local agent.
// Every local agent gets an entry, even if its query fails.
func (p *pass) collectOps(ctx context.Context) error {
	for _, agent := range p.agents {
		has := p.has.Entry(agent)
		ops, err := p.sender.FetchOpHashesForConstraints(ctx, p.space, agent, types.FullQuery())
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			p.collected[agent] = CollectOutcome{Err: err}
			p.tolerate("ops", opsFailures, agent, err)
			continue
		}
		for _, op := range ops {
			has.Add(types.OpKey{Hash: op})
		}
		p.collected[agent] = CollectOutcome{Ops: len(ops)}
	}
	return nil
}

// collectAgents adds the agent infos of the space to the DataMap and to the key
// set of every local agent. The agent info store is shared between the local agents
// of a space, so it is queried only once.
func (p *pass) collectAgents(ctx context.Context) error {
	if len(p.agents) == 0 {
		return nil
	}
	anchor := p.agents[0]
	infos, err := p.sender.QueryAgentInfoSigned(ctx, p.space, anchor)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		p.agentInfoErr = err
		p.tolerate("agents", agentsFailures, anchor, err)
		return nil
	}
	for _, info := range infos {
		data := &types.AgentInfoData{Info: info}
		k := data.Key()
		p.data.Insert(data)
		for _, agent := range p.agents {
			p.has.Entry(agent).Add(k)
		}
	}
	p.agentInfos = len(infos)
	return nil
}

// tolerate records a failed collection query. The pass continues without the
// knowledge the query would have returned.
func (p *pass) tolerate(stage string, failures prometheus.Counter, agent types.AgentID, err error) {
	failures.Inc()
	p.logger.Warn("failed to collect local knowledge",
		zap.String("stage", stage),
		log.ZShortStringer("agent", agent),
		zap.Error(err))
}
