package searcher

// Hyperparameters for UCT

const CSquared = 2.0 // Exploration constant

// Rewards from the perspective of the player who made the move into a node
const Win = 1.0
const Loss = -Win
const Draw = 0.0
