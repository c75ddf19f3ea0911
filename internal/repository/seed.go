package repository

import (
	"github.com/MurugaBoopathi/WS-LAB-INVENTORY-MANAGEMENT/internal/models"
)

// defaultInventory returns the nine-cupboard layout used to seed a fresh
// installation. Every item starts locked (available).
func defaultInventory() inventoryDocument {
	layout := []struct {
		name  string
		items []string
	}{
		{"Cupboard 1 - Measurement Equipment", []string{
			"Digital Oscilloscope 100MHz", "Digital Multimeter",
			"Function Generator", "Logic Analyzer",
		}},
		{"Cupboard 2 - Power Supplies", []string{
			"DC Power Supply 30V/5A", "Variable Power Supply", "Battery Charger",
		}},
		{"Cupboard 3 - Development Boards", []string{
			"Arduino Mega", "Raspberry Pi 4", "STM32 Nucleo Board", "ESP32 Dev Kit",
		}},
		{"Cupboard 4 - Networking Equipment", []string{
			"Ethernet Switch 8-Port", "Wi-Fi Router", "Network Cable Tester",
		}},
		{"Cupboard 5 - Testing Tools", []string{
			"JTAG Debugger", "USB Protocol Analyzer", "CAN Bus Analyzer",
			"Spectrum Analyzer",
		}},
		{"Cupboard 6 - Cables & Connectors", []string{
			"USB-A to USB-B Cable Set", "HDMI Cable Set", "Jumper Wire Kit",
			"BNC Cable Set",
		}},
		{"Cupboard 7 - Safety Equipment", []string{
			"ESD Wrist Strap", "Safety Goggles", "Anti-Static Mat",
		}},
		{"Cupboard 8 - Hand Tools", []string{
			"Soldering Station", "Precision Screwdriver Set", "Wire Stripper",
			"Heat Gun",
		}},
		{"Cupboard 9 - Miscellaneous", []string{
			"Label Printer", "USB Hub 7-Port", "SD Card Reader",
		}},
	}

	doc := inventoryDocument{Cupboards: make([]models.Cupboard, 0, len(layout))}
	for ci, c := range layout {
		cupboard := models.Cupboard{
			ID:    ci + 1,
			Name:  c.name,
			Items: make([]models.Item, 0, len(c.items)),
		}
		for ii, name := range c.items {
			cupboard.Items = append(cupboard.Items, models.Item{
				ID:       itemID(cupboard.ID, ii+1),
				Name:     name,
				IsLocked: true,
			})
		}
		doc.Cupboards = append(doc.Cupboards, cupboard)
	}
	return doc
}
