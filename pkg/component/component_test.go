package component_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/corvid-labs/skillwalk/pkg/classify"
	"github.com/corvid-labs/skillwalk/pkg/component"
	"github.com/corvid-labs/skillwalk/pkg/model"
)

func TestNoDefinitionsIsNoOp(t *testing.T) {
	els := classify.Classify([]model.TapPoint{{Text: "Settings", TapX: 50, TapY: 300}}, 890, nil)
	require.Nil(t, component.Detect(els, nil, 400, 890))
}

func TestTableRowDisclosureDetected(t *testing.T) {
	raw := []model.TapPoint{
		{Text: "General", TapX: 50, TapY: 300},
		{Text: ">", TapX: 390, TapY: 300},
	}
	els := classify.Classify(raw, 890, nil)
	comps := component.Detect(els, component.DefaultDefinitions(), 400, 890)
	require.Len(t, comps, 1)
	require.Equal(t, "table-row-disclosure", comps[0].Kind)
	require.Equal(t, model.ClickNavigates, comps[0].ClickResult)
	require.True(t, comps[0].Clickable)
}

func TestTabBarItemDetected(t *testing.T) {
	raw := []model.TapPoint{
		{Text: "Home", TapX: 50, TapY: 860},
	}
	els := classify.Classify(raw, 890, nil)
	comps := component.Detect(els, component.DefaultDefinitions(), 400, 890)
	require.Len(t, comps, 1)
	require.Equal(t, "tab-bar-item", comps[0].Kind)
}

func TestUnmatchedRowFallsBackToElementComponents(t *testing.T) {
	raw := []model.TapPoint{
		{Text: "9:41", TapX: 20, TapY: 10},
	}
	els := classify.Classify(raw, 890, nil)
	comps := component.Detect(els, component.DefaultDefinitions(), 400, 890)
	require.Len(t, comps, 1)
	require.Equal(t, "element", comps[0].Kind)
	require.False(t, comps[0].Clickable)
}

func TestSectionHeaderAbsorbsInfoRowBelow(t *testing.T) {
	raw := []model.TapPoint{
		{Text: "Privacy", TapX: 50, TapY: 280},
		{Text: "Some very long helper sentence describing this section in detail, and more", TapX: 50, TapY: 310},
	}
	els := classify.Classify(raw, 890, nil)
	comps := component.Detect(els, component.DefaultDefinitions(), 400, 890)
	require.Len(t, comps, 1)
	require.Equal(t, "section-header", comps[0].Kind)
	require.Len(t, comps[0].Elements, 2)
}
