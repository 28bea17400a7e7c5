package main

import (
	"charm-approve-tui/styles"
)

// -------------------- THEME (Lip Gloss) --------------------
// Styles now come from the styles package

var (
	cBorder  = styles.CBorder
	cMuted   = styles.CMuted
	cAccent  = styles.CAccent
	cAccent2 = styles.CAccent2
	cDanger  = styles.CDanger

	panelStyle = styles.PanelStyle
	titleStyle = styles.TitleStyle
)
