package core

import (
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/rmorlok/connlifecycle/internal/breaking"
	"github.com/rmorlok/connlifecycle/internal/database"
	"github.com/rmorlok/connlifecycle/internal/semver"
)

// supportStateOrder is the order batches are written in.
var supportStateOrder = []database.SupportState{
	database.SupportStateUnsupported,
	database.SupportStateDeprecated,
	database.SupportStateSupported,
}

// SupportStateUpdate partitions version ids by the support state they must move to. Versions already in their
// target state are not listed.
type SupportStateUpdate struct {
	Unsupported []uuid.UUID
	Deprecated  []uuid.UUID
	Supported   []uuid.UUID
}

// IdsFor returns the ids moving to the state.
func (u SupportStateUpdate) IdsFor(state database.SupportState) []uuid.UUID {
	switch state {
	case database.SupportStateUnsupported:
		return u.Unsupported
	case database.SupportStateDeprecated:
		return u.Deprecated
	case database.SupportStateSupported:
		return u.Supported
	default:
		return nil
	}
}

// Union returns a new update holding the ids of both.
func (u SupportStateUpdate) Union(o SupportStateUpdate) SupportStateUpdate {
	return SupportStateUpdate{
		Unsupported: concatIds(u.Unsupported, o.Unsupported),
		Deprecated:  concatIds(u.Deprecated, o.Deprecated),
		Supported:   concatIds(u.Supported, o.Supported),
	}
}

func (u SupportStateUpdate) IsEmpty() bool {
	return len(u.Unsupported) == 0 && len(u.Deprecated) == 0 && len(u.Supported) == 0
}

func (u SupportStateUpdate) target(id uuid.UUID) (database.SupportState, bool) {
	for _, state := range supportStateOrder {
		for _, candidate := range u.IdsFor(state) {
			if candidate == id {
				return state, true
			}
		}
	}
	return "", false
}

func concatIds(a, b []uuid.UUID) []uuid.UUID {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}

	result := make([]uuid.UUID, 0, len(a)+len(b))
	result = append(result, a...)
	return append(result, b...)
}

// staleAndFutureChanges picks, among the applicable changes, the highest-versioned change whose deadline has
// passed and the highest-versioned change whose deadline has not. A deadline on the reference date has not
// passed.
func staleAndFutureChanges(applicable []breaking.Change, referenceDate database.Date) (stale, future *breaking.Change) {
	for i := range applicable {
		c := &applicable[i]
		if c.UpgradeDeadline.Before(referenceDate) {
			if stale == nil || c.Version.GreaterThan(stale.Version) {
				stale = c
			}
		} else {
			if future == nil || c.Version.GreaterThan(future.Version) {
				future = c
			}
		}
	}
	return stale, future
}

// TargetSupportState classifies a version against the stale and future breaking changes of its definition.
// Either change may be nil.
func TargetSupportState(v semver.Version, stale, future *breaking.Change) database.SupportState {
	if stale != nil && v.LessThan(stale.Version) {
		return database.SupportStateUnsupported
	}

	if future != nil && v.LessThan(future.Version) {
		return database.SupportStateDeprecated
	}

	return database.SupportStateSupported
}

// ComputeSupportStateUpdate works out which versions of one definition change support state on the reference
// date. Breaking changes apply relative to the definition's default version. Versions whose tag does not parse
// keep their state; their parse errors are returned alongside an update covering every other version.
func ComputeSupportStateUpdate(
	defaultVersion semver.Version,
	changes []breaking.Change,
	versions []database.ActorDefinitionVersion,
	referenceDate database.Date,
) (SupportStateUpdate, error) {
	applicable := breaking.FilterApplicable(changes, defaultVersion)
	stale, future := staleAndFutureChanges(applicable, referenceDate)

	var update SupportStateUpdate
	var result *multierror.Error

	for _, adv := range versions {
		target := database.SupportStateSupported

		if len(applicable) > 0 {
			v, err := semver.Parse(adv.DockerImageTag)
			if err != nil {
				result = multierror.Append(result, errors.Wrapf(err, "version %s", adv.Id))
				continue
			}
			target = TargetSupportState(v, stale, future)
		}

		if target == adv.SupportState {
			continue
		}

		switch target {
		case database.SupportStateUnsupported:
			update.Unsupported = append(update.Unsupported, adv.Id)
		case database.SupportStateDeprecated:
			update.Deprecated = append(update.Deprecated, adv.Id)
		default:
			update.Supported = append(update.Supported, adv.Id)
		}
	}

	return update, result.ErrorOrNil()
}

// ResultingUnsupported returns the ids of the versions that are unsupported once the update is applied: those
// already unsupported and not reclassified, plus those newly moving to unsupported.
func ResultingUnsupported(versions []database.ActorDefinitionVersion, update SupportStateUpdate) []uuid.UUID {
	var result []uuid.UUID
	for _, adv := range versions {
		state := adv.SupportState
		if target, ok := update.target(adv.Id); ok {
			state = target
		}

		if state == database.SupportStateUnsupported {
			result = append(result, adv.Id)
		}
	}
	return result
}
