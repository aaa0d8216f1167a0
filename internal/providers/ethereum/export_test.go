package ethereum

// CrowdfundABIJSON exposes the contract ABI to the external test package so
// tests can encode call results the way the contract would return them.
const CrowdfundABIJSON = crowdfundABIJSON
