// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vault

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/thor-vault/builtin/delegation"
	"github.com/vechain/thor-vault/builtin/gascharger"
	"github.com/vechain/thor-vault/builtin/solidity"
	"github.com/vechain/thor-vault/log"
	"github.com/vechain/thor-vault/state"
	"github.com/vechain/thor-vault/thor"
)

var (
	logger = log.WithContext("pkg", "vault")

	slotConfig          = thor.NameToSlot("vault_config")
	slotProposals       = thor.NameToSlot("vault_proposals")
	slotProposalCounter = thor.NameToSlot("vault_proposal_counter")
	slotReputation      = thor.NameToSlot("vault_reputation")
)

// Vault implements the multisig treasury contract: signers, proposals and votes.
// Votes are recorded under the effective voter resolved by the delegation service.
type Vault struct {
	now        uint32
	emitter    delegation.Emitter
	config     *solidity.Raw[*Config]
	counter    *solidity.Raw[uint64]
	proposals  *solidity.Mapping[proposalKey, *Proposal]
	reputation *solidity.Mapping[thor.Address, *Reputation]

	delegations *delegation.Service
}

// New create a new instance.
func New(addr thor.Address, state *state.State, charger *gascharger.Charger, emitter delegation.Emitter) *Vault {
	sctx := solidity.NewContext(addr, state, charger)
	v := &Vault{
		now:        state.Ledger(),
		emitter:    emitter,
		config:     solidity.NewRaw[*Config](sctx, slotConfig),
		counter:    solidity.NewRaw[uint64](sctx, slotProposalCounter),
		proposals:  solidity.NewMapping[proposalKey, *Proposal](sctx, slotProposals),
		reputation: solidity.NewMapping[thor.Address, *Reputation](sctx, slotReputation),
	}
	v.delegations = delegation.New(sctx, v, emitter)
	return v
}

// Delegations returns the delegation service bound to the vault signers.
func (v *Vault) Delegations() *delegation.Service {
	return v.delegations
}

// Init stores the vault config. It can be done only once.
func (v *Vault) Init(cfg *Config) error {
	current, err := v.getConfig()
	if err != nil {
		return err
	}
	if len(current.Signers) > 0 {
		return ErrAlreadyInitialized
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}
	if err := v.config.Set(cfg, true); err != nil {
		return errors.Wrap(err, "failed to set vault config")
	}
	if err := v.config.ExtendTTL(thor.DelegationTTL); err != nil {
		return errors.Wrap(err, "failed to extend vault config ttl")
	}
	logger.Info("vault initialized", "signers", len(cfg.Signers), "threshold", cfg.Threshold)
	return nil
}

func validateConfig(cfg *Config) error {
	if cfg == nil || len(cfg.Signers) == 0 {
		return errors.WithMessage(ErrInvalidConfig, "no signers")
	}
	if cfg.Threshold == 0 || int(cfg.Threshold) > len(cfg.Signers) {
		return errors.WithMessagef(ErrInvalidConfig, "threshold %d out of range", cfg.Threshold)
	}
	seen := make(map[thor.Address]struct{}, len(cfg.Signers))
	for _, s := range cfg.Signers {
		if s.IsZero() {
			return errors.WithMessage(ErrInvalidConfig, "zero signer")
		}
		if _, ok := seen[s]; ok {
			return errors.WithMessagef(ErrInvalidConfig, "duplicated signer %v", s)
		}
		seen[s] = struct{}{}
	}
	return nil
}

func (v *Vault) getConfig() (*Config, error) {
	cfg, err := v.config.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get vault config")
	}
	if len(cfg.Signers) > 0 {
		if err := v.bumpConfig(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func (v *Vault) bumpConfig() error {
	liveUntil, err := v.config.TTL()
	if err != nil {
		return errors.Wrap(err, "failed to get vault config ttl")
	}
	if liveUntil >= v.now && liveUntil-v.now >= thor.DelegationTTLThreshold {
		return nil
	}
	if err := v.config.ExtendTTL(thor.DelegationTTL); err != nil {
		return errors.Wrap(err, "failed to extend vault config ttl")
	}
	return nil
}

// Config returns the vault config, empty when not initialized.
func (v *Vault) Config() (*Config, error) {
	return v.getConfig()
}

// IsSigner returns whether addr is a signer of the vault.
func (v *Vault) IsSigner(addr thor.Address) (bool, error) {
	cfg, err := v.getConfig()
	if err != nil {
		return false, err
	}
	for _, s := range cfg.Signers {
		if s == addr {
			return true, nil
		}
	}
	return false, nil
}

// Propose creates a pending proposal and returns its id.
func (v *Vault) Propose(proposer, target thor.Address, amount *big.Int, memo string) (uint64, error) {
	logger.Debug("proposing", "proposer", proposer, "target", target, "amount", amount)

	ok, err := v.IsSigner(proposer)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrNotSigner
	}
	if amount == nil || amount.Sign() <= 0 {
		return 0, ErrInvalidAmount
	}

	last, err := v.counter.Get()
	if err != nil {
		return 0, errors.Wrap(err, "failed to get proposal counter")
	}
	id := last + 1
	if err := v.counter.Set(id, last == 0); err != nil {
		return 0, errors.Wrap(err, "failed to set proposal counter")
	}
	if err := v.counter.ExtendTTL(thor.DelegationTTL); err != nil {
		return 0, errors.Wrap(err, "failed to extend proposal counter ttl")
	}

	p := &Proposal{
		ID:        id,
		Hash:      proposalHash(id, proposer, target, amount, memo),
		Proposer:  proposer,
		Target:    target,
		Amount:    new(big.Int).Set(amount),
		Memo:      memo,
		Status:    ProposalPending,
		CreatedAt: v.now,
	}
	if err := v.setProposal(p, true); err != nil {
		return 0, err
	}
	if err := v.emit(ProposalCreatedEvent, proposer, &ProposalEventData{ProposalID: id, Hash: p.Hash, AtLedger: v.now}); err != nil {
		return 0, err
	}

	metricProposals().Add(1)
	logger.Info("proposal created", "id", id, "proposer", proposer)
	return id, nil
}

// Proposal returns the proposal of the given id.
func (v *Vault) Proposal(id uint64) (*Proposal, error) {
	p, err := v.proposals.Get(proposalKey(id))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get proposal")
	}
	if p.IsEmpty() {
		return nil, ErrProposalNotFound
	}
	return p, nil
}

func (v *Vault) setProposal(p *Proposal, newValue bool) error {
	if err := v.proposals.Set(proposalKey(p.ID), p, newValue); err != nil {
		return errors.Wrap(err, "failed to set proposal")
	}
	if err := v.proposals.ExtendTTL(proposalKey(p.ID), thor.DelegationTTL); err != nil {
		return errors.Wrap(err, "failed to extend proposal ttl")
	}
	return nil
}
