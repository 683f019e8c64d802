package service

// SeedNames is the directory loaded at start-up, in display order.
var SeedNames = []string{
	"Sea Breeze",
	"Urban Grill",
	"La Piazza",
	"Golden Dragon",
	"Garden Bistro",
	"Bluefin Sushi",
	"Rustic Oven",
	"Spice Route",
	"Emerald Steakhouse",
	"Cedar & Sage",
	"Copper Pot",
	"Sunset Terrace",
	"Harbor House",
	"Maple & Co.",
	"Cocoa Bean Cafe",
	"Lotus Garden",
	"Rio Cantina",
	"Falafel & Co.",
	"Olive Grove",
	"Truffle & Thyme",
	"Pier 27",
	"Red Lantern",
	"Midnight Diner",
	"Tandoori Flame",
	"Noodle Nook",
	"Pasta Fresca",
	"BBQ Junction",
	"Tapas & Tonic",
	"Pho Station",
	"Saffron Table",
	"Basilico",
	"Lemon & Lime",
	"Poke Planet",
	"Kebab Express",
	"Waffle Works",
	"Soup Society",
	"Burger Barn",
	"Avocado Bar",
	"Morning Glory",
	"The Pantry",
	"Chili & Lime",
	"Miso & More",
	"Curry Leaf",
	"Oyster Bar",
	"Meze House",
	"Cactus Grill",
	"Ramen Republic",
	"Mozzarella Lab",
	"Bread & Butter",
	"Vegan Vibes",
}
