package taxonomy

import (
	"github.com/pkg/errors"
)

// Store is one coherent set of taxonomy tables plus the relations between
// them. Stages are kept both flattened (in taxonomy order) and nested under
// their epochs.
type Store struct {
	Masks         []Mask
	Stages        []Stage
	Epochs        []Epoch
	Settings      []Setting
	Personalities []Personality

	// MaskPersonality maps mask id to personality id.
	MaskPersonality map[string]string
	// MaskStageAffinity maps mask id to stage id to affinity in [0, 1].
	MaskStageAffinity map[string]map[string]float64
	// EpochMaskModifier maps epoch id to mask id to modifier in [0, 1].
	EpochMaskModifier map[string]map[string]float64
	// StageSetting maps stage id to setting id.
	StageSetting map[string]string
}

// Overrides replaces whole taxonomy tables for a single derivation. A nil
// field keeps the base table; a non-nil empty slice replaces it with an
// empty one.
type Overrides struct {
	Masks             []Mask                        `json:"masks,omitempty"`
	Stages            []Stage                       `json:"stages,omitempty"`
	Epochs            []Epoch                       `json:"epochs,omitempty"`
	Settings          []Setting                     `json:"settings,omitempty"`
	Personalities     []Personality                 `json:"personalities,omitempty"`
	MaskPersonality   map[string]string             `json:"mask_personality,omitempty"`
	MaskStageAffinity map[string]map[string]float64 `json:"mask_stage_affinity,omitempty"`
	EpochMaskModifier map[string]map[string]float64 `json:"epoch_mask_modifier,omitempty"`
	StageSetting      map[string]string             `json:"stage_setting,omitempty"`
}

// With derives a new Store from s with any non-nil override table swapped
// in. The receiver is never mutated. Overriding epochs without also
// overriding stages re-derives the flat stage table from the supplied
// epochs so the two views cannot drift apart.
func (s *Store) With(o Overrides) (derived *Store) {
	derived = &Store{
		Masks:             s.Masks,
		Stages:            s.Stages,
		Epochs:            s.Epochs,
		Settings:          s.Settings,
		Personalities:     s.Personalities,
		MaskPersonality:   s.MaskPersonality,
		MaskStageAffinity: s.MaskStageAffinity,
		EpochMaskModifier: s.EpochMaskModifier,
		StageSetting:      s.StageSetting,
	}

	if o.Masks != nil {
		derived.Masks = o.Masks
	}

	if o.Epochs != nil {
		derived.Epochs = o.Epochs
		if o.Stages == nil {
			derived.Stages = flattenStages(o.Epochs)
		}
	}

	if o.Stages != nil {
		derived.Stages = o.Stages
	}

	if o.Settings != nil {
		derived.Settings = o.Settings
	}

	if o.Personalities != nil {
		derived.Personalities = o.Personalities
	}

	if o.MaskPersonality != nil {
		derived.MaskPersonality = o.MaskPersonality
	}

	if o.MaskStageAffinity != nil {
		derived.MaskStageAffinity = o.MaskStageAffinity
	}

	if o.EpochMaskModifier != nil {
		derived.EpochMaskModifier = o.EpochMaskModifier
	}

	if o.StageSetting != nil {
		derived.StageSetting = o.StageSetting
	}

	return derived
}

func flattenStages(epochs []Epoch) (stages []Stage) {
	for _, epoch := range epochs {
		for _, stage := range epoch.Stages {
			if stage.EpochID == "" {
				stage.EpochID = epoch.ID
			}

			stages = append(stages, stage)
		}
	}

	return stages
}

// MaskByID looks a mask up by id.
func (s *Store) MaskByID(id string) (mask Mask, found bool) {
	for _, m := range s.Masks {
		if m.ID == id {
			return m, true
		}
	}

	return mask, false
}

// StageByID looks a stage up by id.
func (s *Store) StageByID(id string) (stage Stage, found bool) {
	for _, st := range s.Stages {
		if st.ID == id {
			return st, true
		}
	}

	return stage, false
}

// EpochByID looks an epoch up by id.
func (s *Store) EpochByID(id string) (epoch Epoch, found bool) {
	for _, e := range s.Epochs {
		if e.ID == id {
			return e, true
		}
	}

	return epoch, false
}

// SettingByID looks a setting up by id.
func (s *Store) SettingByID(id string) (setting Setting, found bool) {
	for _, se := range s.Settings {
		if se.ID == id {
			return se, true
		}
	}

	return setting, false
}

// PersonalityByID looks a personality up by id.
func (s *Store) PersonalityByID(id string) (personality Personality, found bool) {
	for _, p := range s.Personalities {
		if p.ID == id {
			return p, true
		}
	}

	return personality, false
}

// EpochForStage returns the epoch a stage belongs to. A zero Epoch comes
// back when the stage is unknown or belongs to no epoch.
func (s *Store) EpochForStage(stageID string) (epoch Epoch) {
	stage, found := s.StageByID(stageID)
	if !found {
		return epoch
	}

	if stage.EpochID != "" {
		epoch, _ = s.EpochByID(stage.EpochID)
		return epoch
	}

	for _, e := range s.Epochs {
		for _, st := range e.Stages {
			if st.ID == stageID {
				return e
			}
		}
	}

	return epoch
}

// PersonalityForMask resolves the personality paired with a mask. A zero
// Personality comes back when no pairing exists.
func (s *Store) PersonalityForMask(maskID string) (personality Personality) {
	id, ok := s.MaskPersonality[maskID]
	if !ok {
		return personality
	}

	personality, _ = s.PersonalityByID(id)

	return personality
}

// SettingForStage resolves the setting associated with a stage. A zero
// Setting comes back when no association exists.
func (s *Store) SettingForStage(stageID string) (setting Setting) {
	id, ok := s.StageSetting[stageID]
	if !ok {
		return setting
	}

	setting, _ = s.SettingByID(id)

	return setting
}

// Affinity returns the mask's affinity with a stage, defaulting to 0 when
// the pair is unrelated.
func (s *Store) Affinity(maskID, stageID string) (affinity float64) {
	return s.MaskStageAffinity[maskID][stageID]
}

// Modifier returns the epoch's emphasis modifier for a mask, defaulting to
// 0 when the pair is unrelated.
func (s *Store) Modifier(epochID, maskID string) (modifier float64) {
	return s.EpochMaskModifier[epochID][maskID]
}

// Validate checks referential integrity of the relation tables and the
// [0, 1] range on affinities and modifiers.
func (s *Store) Validate() (err error) {
	for maskID, personalityID := range s.MaskPersonality {
		if _, found := s.MaskByID(maskID); !found {
			return errors.Errorf("mask personality relation references unknown mask %q", maskID)
		}

		if _, found := s.PersonalityByID(personalityID); !found {
			return errors.Errorf("mask %q references unknown personality %q", maskID, personalityID)
		}
	}

	for maskID, stages := range s.MaskStageAffinity {
		if _, found := s.MaskByID(maskID); !found {
			return errors.Errorf("stage affinity relation references unknown mask %q", maskID)
		}

		for stageID, affinity := range stages {
			if _, found := s.StageByID(stageID); !found {
				return errors.Errorf("mask %q has affinity for unknown stage %q", maskID, stageID)
			}

			if affinity < 0 || affinity > 1 {
				return errors.Errorf("affinity %f for mask %q stage %q outside [0, 1]", affinity, maskID, stageID)
			}
		}
	}

	for epochID, masks := range s.EpochMaskModifier {
		if _, found := s.EpochByID(epochID); !found {
			return errors.Errorf("epoch modifier relation references unknown epoch %q", epochID)
		}

		for maskID, modifier := range masks {
			if _, found := s.MaskByID(maskID); !found {
				return errors.Errorf("epoch %q has modifier for unknown mask %q", epochID, maskID)
			}

			if modifier < 0 || modifier > 1 {
				return errors.Errorf("modifier %f for epoch %q mask %q outside [0, 1]", modifier, epochID, maskID)
			}
		}
	}

	for stageID, settingID := range s.StageSetting {
		if _, found := s.StageByID(stageID); !found {
			return errors.Errorf("stage setting relation references unknown stage %q", stageID)
		}

		if _, found := s.SettingByID(settingID); !found {
			return errors.Errorf("stage %q references unknown setting %q", stageID, settingID)
		}
	}

	return err
}
